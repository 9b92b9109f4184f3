package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atendeai/dashboard-server-go/internal/model"
)

func TestBuildUpsertUserArgs(t *testing.T) {
	const owner = "github|1000"

	roleArg := func(args []interface{}) model.Role { return args[4].(model.Role) }
	applyArg := func(args []interface{}) bool { return args[6].(bool) }

	t.Run("re-login of a non-owner leaves the stored role alone", func(t *testing.T) {
		args := buildUpsertUserArgs(model.UpsertUserParams{OpenID: "github|42"}, owner)

		require.Len(t, args, 7)
		assert.Equal(t, model.RoleUser, roleArg(args))
		assert.False(t, applyArg(args), "without an explicit role or owner match the update arm must keep users.role")
	})

	t.Run("owner identity forces admin on every login", func(t *testing.T) {
		args := buildUpsertUserArgs(model.UpsertUserParams{OpenID: owner}, owner)

		assert.Equal(t, model.RoleAdmin, roleArg(args))
		assert.True(t, applyArg(args))
	})

	t.Run("explicit role always overwrites", func(t *testing.T) {
		admin := model.RoleAdmin
		args := buildUpsertUserArgs(model.UpsertUserParams{OpenID: "github|42", Role: &admin}, owner)

		assert.Equal(t, model.RoleAdmin, roleArg(args))
		assert.True(t, applyArg(args))
	})

	t.Run("last_signed_in defaults to now and honors an override", func(t *testing.T) {
		before := time.Now()
		args := buildUpsertUserArgs(model.UpsertUserParams{OpenID: "github|42"}, owner)
		assert.WithinDuration(t, before, args[5].(time.Time), time.Second)

		at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
		args = buildUpsertUserArgs(model.UpsertUserParams{OpenID: "github|42", LastSignedIn: &at}, owner)
		assert.Equal(t, at, args[5].(time.Time))
	})
}

// The statement itself carries the single-row and refresh guarantees: it is
// keyed ON CONFLICT (open_id), so a second login updates in place, and the
// update arm unconditionally takes the new last_signed_in while gating the
// role overwrite on the policy flag.
func TestUpsertUserQuery(t *testing.T) {
	assert.Contains(t, upsertUserQuery, "ON CONFLICT (open_id) DO UPDATE")
	assert.Contains(t, upsertUserQuery, "last_signed_in = EXCLUDED.last_signed_in")
	assert.Contains(t, upsertUserQuery, "role = CASE WHEN $7 THEN EXCLUDED.role ELSE users.role END")
	assert.NotContains(t, upsertUserQuery, "role = EXCLUDED.role,")
}
