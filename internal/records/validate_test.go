package records

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFrozenClock(t *testing.T, ms int64) {
	t.Helper()
	old := now
	now = func() int64 { return ms }
	t.Cleanup(func() { now = old })
}

func TestBuild_RequiredFieldRules(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		in   Input
		ok   bool
	}{
		{"account complete", KindAccount, Input{ServiceName: "mail", Username: "bob", Password: "pw"}, true},
		{"account missing password", KindAccount, Input{ServiceName: "mail", Username: "bob"}, false},
		{"account whitespace-only username", KindAccount, Input{ServiceName: "mail", Username: "   ", Password: "pw"}, false},
		{"bank complete", KindBank, Input{ServiceName: "First Bank", Username: "12-3456", Password: "0000"}, true},
		{"bank missing account number", KindBank, Input{ServiceName: "First Bank", Password: "0000"}, false},
		{"insurance without password", KindInsurance, Input{ServiceName: "life", Username: "bob@mail.test"}, true},
		{"insurance missing username", KindInsurance, Input{ServiceName: "life"}, false},
		{"extra notes only", KindExtra, Input{Notes: "x"}, true},
		{"extra name only", KindExtra, Input{ServiceName: "x"}, true},
		{"extra both blank", KindExtra, Input{ServiceName: "", Notes: "  "}, false},
		{"wifi complete", KindWifi, Input{ServiceName: "home-ap", Password: "hunter2"}, true},
		{"wifi missing password", KindWifi, Input{ServiceName: "home-ap"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Build(tc.kind, tc.in, nil)
			if tc.ok {
				require.NoError(t, err)
				require.NotNil(t, r)
				assert.Equal(t, tc.kind, r.Kind)
			} else {
				require.Error(t, err)
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tc.kind, verr.Kind)
				assert.NotEmpty(t, verr.Missing)
			}
		})
	}
}

func TestBuild_ErrorNamesMissingCombination(t *testing.T) {
	_, err := Build(KindBank, Input{ServiceName: "bank"}, nil)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"username", "password"}, verr.Missing)
	assert.False(t, verr.Or)
	assert.Contains(t, verr.Error(), "username, password")

	_, err = Build(KindExtra, Input{}, nil)
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Or)
	assert.Contains(t, verr.Error(), "at least one of")
}

func TestBuild_TrimsInputs(t *testing.T) {
	r, err := Build(KindAccount, Input{
		ServiceName: "  mail  ",
		Username:    " bob ",
		Password:    " pw ",
		Notes:       "  note  ",
		SiteURL:     " https://mail.test ",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "mail", r.ServiceName)
	assert.Equal(t, "bob", r.Username)
	assert.Equal(t, "pw", r.Password)
	assert.Equal(t, "note", r.Notes)
	assert.Equal(t, "https://mail.test", r.SiteURL)
}

func TestBuild_ZeroesFieldsForeignToKind(t *testing.T) {
	r, err := Build(KindExtra, Input{ServiceName: "pin", Username: "bob", Password: "pw", Notes: "1234"}, nil)
	require.NoError(t, err)
	assert.Empty(t, r.Username)
	assert.Empty(t, r.Password)

	r, err = Build(KindWifi, Input{ServiceName: "ap", Username: "bob", Password: "pw"}, nil)
	require.NoError(t, err)
	assert.Empty(t, r.Username)

	r, err = Build(KindBank, Input{ServiceName: "b", Username: "1", Password: "2", SiteURL: "https://x.test"}, nil)
	require.NoError(t, err)
	assert.Empty(t, r.SiteURL)
}

func TestBuild_CreateSetsTimestampsAndLeavesIDUnset(t *testing.T) {
	withFrozenClock(t, 1700000000000)

	r, err := Build(KindWifi, Input{ServiceName: "ap", Password: "pw"}, nil)
	require.NoError(t, err)
	assert.Empty(t, r.ID)
	assert.Equal(t, int64(1700000000000), r.CreatedAt)
	assert.Equal(t, int64(1700000000000), r.UpdatedAt)
}

func TestBuild_UpdatePreservesIdentityAndCreatedAt(t *testing.T) {
	withFrozenClock(t, 1700000005000)

	existing := &Record{
		ID:        "rec-1",
		OwnerID:   "user-1",
		Kind:      KindAccount,
		CreatedAt: 1600000000000,
		UpdatedAt: 1600000000000,
	}

	r, err := Build(KindAccount, Input{ServiceName: "mail", Username: "bob", Password: "new"}, existing)
	require.NoError(t, err)
	assert.Equal(t, "rec-1", r.ID)
	assert.Equal(t, "user-1", r.OwnerID)
	assert.Equal(t, int64(1600000000000), r.CreatedAt)
	assert.Equal(t, int64(1700000005000), r.UpdatedAt)
}

func TestBuild_UnknownKind(t *testing.T) {
	_, err := Build(Kind("passport"), Input{ServiceName: "x"}, nil)
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr), "unknown kind is not a field-validation failure")
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(KindExtra, Input{Notes: "x"}))
	assert.False(t, Valid(KindExtra, Input{}))
}
