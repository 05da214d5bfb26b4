package api

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"blogify/internal/auth"
	"blogify/internal/comment"
	"blogify/internal/config"
	"blogify/internal/db"
	"blogify/internal/post"
	"blogify/internal/user"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	keysOnce sync.Once
	keys     *auth.Keys
)

func testKeys(t *testing.T) *auth.Keys {
	t.Helper()
	keysOnce.Do(func() {
		priv, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatalf("generate key: %v", err)
		}
		keys = &auth.Keys{Private: priv, Public: &priv.PublicKey}
	})
	return keys
}

type testServer struct {
	r      *gin.Engine
	db     *gorm.DB
	tokens *auth.TokenService
}

// newTestServer wires the full router against a fresh in-memory database.
func newTestServer(t *testing.T, rule post.DeleteRule) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	tokens := auth.NewTokenService(testKeys(t), time.Hour)
	userStore := user.NewStore(conn)
	postStore := post.NewStore(conn)

	cfg := &config.Config{}
	cfg.Server.Subpath = "/api/v1"
	r := SetupRouter(cfg, Deps{
		Auth:     auth.NewService(userStore, tokens),
		Guard:    auth.NewGuard(tokens, userStore, nil),
		Users:    user.NewService(userStore),
		Posts:    post.NewService(postStore, userStore, rule),
		Comments: comment.NewService(comment.NewStore(conn), postStore),
	})
	return &testServer{r: r, db: conn, tokens: tokens}
}

func (s *testServer) seedUser(t *testing.T, email string, admin bool) user.User {
	t.Helper()
	u := user.User{Email: email, PasswordHash: "hash", FirstName: "First", LastName: "Last", IsAdmin: admin}
	if err := s.db.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func (s *testServer) seedPost(t *testing.T, authorID uint, title string) post.Post {
	t.Helper()
	p := post.Post{Title: title, Content: "content of " + title, UserID: authorID}
	if err := s.db.Create(&p).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return p
}

func (s *testServer) token(t *testing.T, u user.User) string {
	t.Helper()
	token, err := s.tokens.Issue(auth.Principal{SubjectID: u.ID})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

// do sends a request; body may be nil, a raw string or any JSON-encodable value.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func toStrUint(x uint) string {
	return fmt.Sprintf("%d", x)
}
