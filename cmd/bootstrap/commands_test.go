package bootstrap

import (
	"bytes"
	"context"
	"testing"
	"time"

	"docscript/config"
	"docscript/internal/domain/entity"
	"docscript/internal/repository/memory"
	"docscript/internal/usecase"
	"docscript/pkg/jwt"

	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromoteFixture(t *testing.T, users ...*entity.User) (usecase.UserUsecase, *memory.UserRepository) {
	t.Helper()

	repo := memory.NewUserRepository()
	for _, u := range users {
		require.NoError(t, repo.Create(context.Background(), u))
	}

	log, _ := logtest.NewNullLogger()
	svc := jwt.NewJWTService(config.JWTConfig{Secret: "cli-test-secret", Expiry: time.Hour})
	return usecase.NewUserUsecase(log, repo, svc, uuid.Nil), repo
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd, out
}

func TestRunPromote_PromotesUser(t *testing.T) {
	users, repo := newPromoteFixture(t, &entity.User{Email: "doc@clinic.test", Password: "x", Role: entity.RoleUser})
	cmd, out := newTestCommand()

	require.NoError(t, runPromote(cmd, users, "doc@clinic.test"))
	assert.Contains(t, out.String(), "Promoted user to ADMIN (approved): doc@clinic.test")

	stored, err := repo.FindByEmail(context.Background(), "doc@clinic.test")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, stored.Role)
	assert.True(t, stored.Approved)
}

func TestRunPromote_ApprovesUnapprovedAdmin(t *testing.T) {
	users, _ := newPromoteFixture(t, &entity.User{Email: "doc@clinic.test", Password: "x", Role: entity.RoleAdmin})
	cmd, out := newTestCommand()

	require.NoError(t, runPromote(cmd, users, "doc@clinic.test"))
	assert.Contains(t, out.String(), "set approved=true")
}

func TestRunPromote_AlreadyAdmin(t *testing.T) {
	users, _ := newPromoteFixture(t, &entity.User{Email: "doc@clinic.test", Password: "x", Role: entity.RoleAdmin, Approved: true})
	cmd, out := newTestCommand()

	require.NoError(t, runPromote(cmd, users, "doc@clinic.test"))
	assert.Contains(t, out.String(), "already ADMIN and approved")
}

func TestRunPromote_UnknownUser(t *testing.T) {
	users, _ := newPromoteFixture(t)
	cmd, _ := newTestCommand()

	err := runPromote(cmd, users, "ghost@clinic.test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user not found")
}

func TestNewRootCommand_Subcommands(t *testing.T) {
	t.Setenv("DOCSCRIPT_API_URL", "")
	root := NewRootCommand()

	for _, path := range [][]string{
		{"serve"},
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "status"},
		{"promote-admin"},
		{"login"},
		{"whoami"},
		{"logout"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, "path %v", path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	login, _, err := root.Find([]string{"login"})
	require.NoError(t, err)
	assert.Equal(t, defaultAPIURL, login.Flags().Lookup("api").DefValue)
}
