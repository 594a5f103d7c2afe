package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleRequestTrim(t *testing.T) {
	req := RoleRequest{
		Title:      "  Claims Specialist  ",
		Department: "\tClaims\n",
		Notes:      " notes ",
	}
	req.Trim()

	assert.Equal(t, "Claims Specialist", req.Title)
	assert.Equal(t, "Claims", req.Department)
	assert.Equal(t, "notes", req.Notes)
}

func TestRoleRequestValidate_MissingTitle(t *testing.T) {
	req := RoleRequest{}
	err := req.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Title", verrs[0].Field())
}

func TestRoleRequestValidate_Valid(t *testing.T) {
	req := RoleRequest{Title: "Underwriter"}
	assert.NoError(t, req.Validate())
}

func TestAdaptRequestValidate_MissingOriginalJD(t *testing.T) {
	req := AdaptRequest{RoleRequest: RoleRequest{Title: "Underwriter"}}
	err := req.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "OriginalJD", verrs[0].Field())
}

func TestRewriteRequestValidate(t *testing.T) {
	req := RewriteRequest{Content: "text"}
	err := req.Validate()
	require.Error(t, err)

	req.Tone = "casual"
	assert.NoError(t, req.Validate())
}

func TestWorkTypeLine(t *testing.T) {
	tests := []struct {
		name     string
		isRemote bool
		isHybrid bool
		want     string
	}{
		{"neither", false, false, ""},
		{"remote", true, false, WorkTypeRemoteLine},
		{"hybrid", false, true, WorkTypeHybridLine},
		{"remote wins over hybrid", true, true, WorkTypeRemoteLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := RoleRequest{IsRemote: tt.isRemote, IsHybrid: tt.isHybrid}
			assert.Equal(t, tt.want, req.WorkTypeLine())
		})
	}
}
