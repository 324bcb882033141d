package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/eggbreaker/internal/api"
	"github.com/mcoot/eggbreaker/internal/factory"
	"github.com/mcoot/eggbreaker/internal/testutil"
)

type CLISuite struct {
	suite.Suite
	app       *factory.TestApp
	server    *httptest.Server
	tokenFile string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:             testutil.NopLogger(),
		AuthService:        s.app.AuthService,
		LeaderboardService: s.app.LeaderboardService,
		ProfileService:     s.app.ProfileService,
		Sessions:           s.app.Sessions,
		SessionDuration:    time.Hour,
	}))
	s.tokenFile = filepath.Join(s.T().TempDir(), "token")
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
	s.app.Sessions.Shutdown(s.T().Context())
}

func (s *CLISuite) run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", s.server.URL, "--token-file", s.tokenFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (s *CLISuite) TestDemoStoresToken() {
	out, err := s.run("--output", "json", "demo")
	s.Require().NoError(err, out)

	var sess Session
	s.Require().NoError(json.Unmarshal([]byte(out), &sess))
	s.NotEmpty(sess.SessionToken)
	s.True(sess.DemoMode)

	data, err := os.ReadFile(s.tokenFile)
	s.Require().NoError(err)
	s.Equal(sess.SessionToken, string(data))
}

func (s *CLISuite) TestTapText() {
	_, err := s.run("demo")
	s.Require().NoError(err)

	out, err := s.run("tap", "--count", "10")
	s.Require().NoError(err, out)
	s.Contains(out, "Taps: 10")
	s.Contains(out, "Egg cracked! Level up!")
	s.Contains(out, "Level: 2")
	s.Contains(out, "HP: [####################] 22/22")
}

func (s *CLISuite) TestTapRejectsZeroCount() {
	_, err := s.run("demo")
	s.Require().NoError(err)

	_, err = s.run("tap", "--count", "0")
	s.Require().Error(err)
}

func (s *CLISuite) TestSignUpAndMe() {
	_, err := s.run("signup", "--email", "alice@example.com", "--password", "hunter22", "--name", "Alice")
	s.Require().NoError(err)

	out, err := s.run("me")
	s.Require().NoError(err, out)
	s.Contains(out, "Player: Alice")
	s.Contains(out, "Level: 1")
	s.NotContains(out, "[demo]")
}

func (s *CLISuite) TestSignOutClearsToken() {
	_, err := s.run("demo")
	s.Require().NoError(err)

	out, err := s.run("signout")
	s.Require().NoError(err, out)
	s.Contains(out, "Signed out")

	_, err = os.Stat(s.tokenFile)
	s.True(os.IsNotExist(err))
	s.Equal(0, s.app.Sessions.Len())
}

func (s *CLISuite) TestSignOutWithoutToken() {
	_, err := s.run("signout")
	s.Require().Error(err)
	s.Contains(err.Error(), "not signed in")
}

func (s *CLISuite) TestMeWithoutSession() {
	_, err := s.run("me")
	s.Require().Error(err)

	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(401, apiErr.Status)
	s.Equal("UNAUTHORIZED", apiErr.Code)
}

func (s *CLISuite) TestSignInWrongPassword() {
	_, err := s.run("signup", "--email", "alice@example.com", "--password", "hunter22")
	s.Require().NoError(err)

	_, err = s.run("signin", "--email", "alice@example.com", "--password", "wrong-one")
	s.Require().Error(err)

	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("WRONG_CREDENTIAL", apiErr.Code)
	s.Equal("Invalid password", apiErr.Message)
}

func (s *CLISuite) TestLevel() {
	out, err := s.run("level", "101")
	s.Require().NoError(err, out)
	s.Contains(out, "Egg: Obsidian Egg (obsidian)")

	_, err = s.run("level", "abc")
	s.Require().Error(err)
}

func (s *CLISuite) TestLeaderboardEmpty() {
	out, err := s.run("leaderboard")
	s.Require().NoError(err, out)
	s.Contains(out, "No players yet")
}

func (s *CLISuite) TestHealth() {
	out, err := s.run("health")
	s.Require().NoError(err, out)
	s.Contains(out, "Status: ok")
	s.Contains(out, "Remote Store: enabled")
}

func TestOutput_Leaderboard(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("text", &buf).Print(Leaderboard{Entries: []LeaderboardEntry{
		{Rank: 1, DisplayName: "Alice", Level: 7, TotalClicks: 300},
		{Rank: 2, DisplayName: "Bob", Level: 3, TotalClicks: 40},
	}})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[1]), "Alice")
	assert.Contains(t, string(lines[2]), "Bob")
}

func TestOutput_SignedOutSession(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("text", &buf).Print(Session{})
	assert.Equal(t, "Not signed in\n", buf.String())
}

func TestOutput_JSONMessage(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("json", &buf).PrintMessage("hello")
	assert.JSONEq(t, `{"message":"hello"}`, buf.String())
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[####################]", progressBar(10, 10))
	assert.Equal(t, "[##########..........]", progressBar(5, 10))
	assert.Equal(t, "[#...................]", progressBar(1, 1000))
	assert.Equal(t, "[....................]", progressBar(0, 10))
}

func (s *CLISuite) TestRejectsUnknownOutputFormat() {
	_, err := s.run("--output", "yaml", "health")
	s.Require().Error(err)
	s.Contains(err.Error(), "invalid output format")
}

func TestConfig_TokenRoundTrip(t *testing.T) {
	cfg := &Config{TokenFile: filepath.Join(t.TempDir(), "nested", "token")}

	require.NoError(t, cfg.LoadToken())
	assert.Empty(t, cfg.Token)

	require.NoError(t, cfg.SaveToken("sess_abc"))

	loaded := &Config{TokenFile: cfg.TokenFile}
	require.NoError(t, loaded.LoadToken())
	assert.Equal(t, "sess_abc", loaded.Token)

	require.NoError(t, loaded.ClearToken())
	require.NoError(t, loaded.ClearToken())
	assert.Empty(t, loaded.Token)
}

func TestConfig_ExplicitTokenWins(t *testing.T) {
	cfg := &Config{Token: "from-flag", TokenFile: filepath.Join(t.TempDir(), "token")}
	require.NoError(t, os.WriteFile(cfg.TokenFile, []byte("from-file\n"), 0o600))

	require.NoError(t, cfg.LoadToken())
	assert.Equal(t, "from-flag", cfg.Token)
}
