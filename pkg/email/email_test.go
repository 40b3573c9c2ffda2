package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "mergington/pkg/domain-errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "lowercases", raw: "Foo@Bar.com", want: "foo@bar.com"},
		{name: "trims surrounding whitespace", raw: "  student@mergington.edu\t", want: "student@mergington.edu"},
		{name: "empty", raw: "", wantErr: true},
		{name: "whitespace only", raw: "   ", wantErr: true},
		{name: "invalid utf8", raw: "bad\xffaddr@mergington.edu", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(" MICHAEL@mergington.edu", "michael@mergington.edu"))
	assert.False(t, Equal("michael@mergington.edu", "daniel@mergington.edu"))
}
