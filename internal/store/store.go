package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/briteco/briteroles/internal/types"
)

// Blob prefixes for the two logical resource kinds.
const (
	DraftsPrefix = "drafts/"
	SavedPrefix  = "saved/"
)

// DefaultTimeout bounds a single blob operation.
const DefaultTimeout = 30 * time.Second

// listConcurrency bounds parallel blob reads during list operations.
const listConcurrency = 8

// ErrNotFound indicates the requested blob does not exist.
var ErrNotFound = errors.New("object not found")

// central is the fixed timezone for last-saved timestamps.
var central = func() *time.Location {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// Timestamp formats a save time in the fixed locale. The format sorts
// lexicographically in chronological order, so list sorting is a plain
// string sort on this field.
func Timestamp(t time.Time) string {
	return t.In(central).Format("2006-01-02 15:04:05")
}

// blobStore is the raw blob surface the Store builds on. The GCS-backed
// implementation is the only production one; tests use an in-memory fake.
type blobStore interface {
	write(ctx context.Context, name string, data []byte) error
	read(ctx context.Context, name string) ([]byte, error)
	delete(ctx context.Context, name string) error
	list(ctx context.Context, prefix string) ([]string, error)
}

// Store is the draft/saved-role adapter over a blob bucket.
type Store struct {
	blobs   blobStore
	timeout time.Duration
	now     func() time.Time
}

// New creates a store for the given GCS bucket. With no options the client
// uses application default credentials.
func New(ctx context.Context, bucket string, opts ...option.ClientOption) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return newStore(&gcsBlobs{client: client, bucket: bucket}), nil
}

func newStore(blobs blobStore) *Store {
	return &Store{
		blobs:   blobs,
		timeout: DefaultTimeout,
		now:     time.Now,
	}
}

// Close releases the underlying storage client.
func (s *Store) Close() error {
	if closer, ok := s.blobs.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// SaveDraft upserts a draft document and returns its file name.
// Last writer wins; there is no versioning.
func (s *Store) SaveDraft(ctx context.Context, doc *types.RoleDocument) (string, error) {
	return s.save(ctx, DraftsPrefix, doc)
}

// SaveRole upserts a finalized role document and then best-effort deletes the
// draft with the same derived slug (promotion). A missing draft is not an
// error.
func (s *Store) SaveRole(ctx context.Context, doc *types.RoleDocument) (string, error) {
	file, err := s.save(ctx, SavedPrefix, doc)
	if err != nil {
		return "", err
	}

	if delErr := s.DeleteDraft(ctx, file); delErr != nil {
		log.Printf("[STORE] draft cleanup after promotion failed for %s: %v", file, delErr)
	}

	return file, nil
}

// ListDrafts returns draft summaries sorted by last-saved time descending.
func (s *Store) ListDrafts(ctx context.Context) ([]types.RoleSummary, error) {
	return s.list(ctx, DraftsPrefix)
}

// ListRoles returns saved-role summaries sorted by last-saved time descending.
func (s *Store) ListRoles(ctx context.Context) ([]types.RoleSummary, error) {
	return s.list(ctx, SavedPrefix)
}

// LoadDraft fetches a draft document by file name.
func (s *Store) LoadDraft(ctx context.Context, file string) (*types.RoleDocument, error) {
	return s.load(ctx, DraftsPrefix, file)
}

// LoadRole fetches a saved-role document by file name.
func (s *Store) LoadRole(ctx context.Context, file string) (*types.RoleDocument, error) {
	return s.load(ctx, SavedPrefix, file)
}

// DeleteDraft removes a draft blob. Deletes are best-effort: a missing blob
// or an unreachable store is logged and reported as success so cleanup never
// blocks the user-facing flow.
func (s *Store) DeleteDraft(ctx context.Context, file string) error {
	return s.delete(ctx, DraftsPrefix, file)
}

// DeleteRole removes a saved-role blob with the same best-effort semantics as
// DeleteDraft.
func (s *Store) DeleteRole(ctx context.Context, file string) error {
	return s.delete(ctx, SavedPrefix, file)
}

func (s *Store) save(ctx context.Context, prefix string, doc *types.RoleDocument) (string, error) {
	slug := DocumentSlug(doc.Title, doc.SavedBy)
	if slug == "" {
		return "", fmt.Errorf("cannot derive slug from title %q", doc.Title)
	}
	file := slug + ".json"

	doc.LastSavedBy = doc.SavedBy
	doc.LastSavedAt = Timestamp(s.now())

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.blobs.write(ctx, prefix+file, data); err != nil {
		return "", fmt.Errorf("failed to write %s%s: %w", prefix, file, err)
	}

	return file, nil
}

func (s *Store) list(ctx context.Context, prefix string) ([]types.RoleSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	names, err := s.blobs.list(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}

	var (
		mu        sync.Mutex
		summaries []types.RoleSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for _, name := range names {
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		g.Go(func() error {
			doc, err := s.read(gctx, name)
			if err != nil {
				// Skip unreadable or malformed blobs rather than failing
				// the whole listing.
				log.Printf("[STORE] skipping %s: %v", name, err)
				return nil
			}
			mu.Lock()
			summaries = append(summaries, types.RoleSummary{
				File:            strings.TrimPrefix(name, prefix),
				Title:           doc.Title,
				ExperienceLevel: doc.ExperienceLevel,
				LastSavedBy:     doc.LastSavedBy,
				LastSavedAt:     doc.LastSavedAt,
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortSummaries(summaries)
	return summaries, nil
}

// SortSummaries orders summaries by last-saved timestamp descending. The
// timestamp format is lexicographically monotonic, so string comparison is
// sufficient.
func SortSummaries(summaries []types.RoleSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastSavedAt > summaries[j].LastSavedAt
	})
}

func (s *Store) load(ctx context.Context, prefix, file string) (*types.RoleDocument, error) {
	if err := validateFileName(file); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.read(ctx, prefix+file)
}

func (s *Store) read(ctx context.Context, name string) (*types.RoleDocument, error) {
	data, err := s.blobs.read(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var doc types.RoleDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return &doc, nil
}

func (s *Store) delete(ctx context.Context, prefix, file string) error {
	if err := validateFileName(file); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.blobs.delete(ctx, prefix+file); err != nil && !errors.Is(err, ErrNotFound) {
		log.Printf("[STORE] delete %s%s failed (swallowed): %v", prefix, file, err)
	}
	return nil
}

// validateFileName rejects file parameters that could escape the prefix.
func validateFileName(file string) error {
	if file == "" {
		return fmt.Errorf("file name is required")
	}
	if strings.Contains(file, "/") || strings.Contains(file, "..") {
		return fmt.Errorf("invalid file name %q", file)
	}
	return nil
}

// gcsBlobs implements blobStore against a GCS bucket.
type gcsBlobs struct {
	client *storage.Client
	bucket string
}

func (b *gcsBlobs) write(ctx context.Context, name string, data []byte) error {
	w := b.client.Bucket(b.bucket).Object(name).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (b *gcsBlobs) read(ctx context.Context, name string) ([]byte, error) {
	r, err := b.client.Bucket(b.bucket).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

func (b *gcsBlobs) delete(ctx context.Context, name string) error {
	err := b.client.Bucket(b.bucket).Object(name).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return ErrNotFound
	}
	return err
}

func (b *gcsBlobs) list(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	it := b.client.Bucket(b.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

func (b *gcsBlobs) Close() error {
	return b.client.Close()
}
