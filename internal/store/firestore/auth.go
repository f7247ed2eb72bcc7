package firestore

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/store"
	"github.com/SangJLee1103/InstagramClone/internal/util"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// Auth 把 Firebase Authentication 适配为 Authenticator。账户管理走
// Admin SDK，密码登录走 Identity Toolkit REST 接口（Admin SDK 不提供），
// 登录得到的 ID token 保存在进程内作为当前会话。
type Auth struct {
	client *auth.Client
	apiKey string
	http   *http.Client

	mu      sync.Mutex
	idToken string
}

// NewAuth 创建 Firebase Auth 客户端
func NewAuth(ctx context.Context, projectID, credentialsFile, apiKey string) (*Auth, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "create firebase app", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "create firebase auth client", err)
	}
	return &Auth{client: client, apiKey: apiKey, http: http.DefaultClient}, nil
}

func (a *Auth) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if !util.IsValidEmail(email) {
		return "", errors.New(errors.ErrInvalidEmail, "invalid email address")
	}
	if !util.IsPasswordStrong(password) {
		return "", errors.New(errors.ErrWeakPassword, "password too weak")
	}

	record, err := a.client.CreateUser(ctx, (&auth.UserToCreate{}).Email(email).Password(password))
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", errors.Wrap(errors.ErrEmailAlreadyInUse, "email already in use", err)
		}
		return "", errors.Wrap(errors.ErrInternal, "create firebase user", err)
	}

	// 注册后立即登录，与移动端行为一致
	if _, err := a.SignIn(ctx, email, password); err != nil {
		return "", err
	}
	return record.UID, nil
}

func (a *Auth) SignIn(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrInternal, "encode sign-in request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, signInEndpoint+"?key="+a.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(errors.ErrInternal, "build sign-in request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", errors.Wrap(errors.ErrNetwork, "sign-in request failed", err)
	}
	defer resp.Body.Close()

	var payload struct {
		LocalID string `json:"localId"`
		IDToken string `json:"idToken"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", errors.Wrap(errors.ErrInternal, "decode sign-in response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", classifySignIn(payload.Error.Message)
	}

	a.mu.Lock()
	a.idToken = payload.IDToken
	a.mu.Unlock()
	return payload.LocalID, nil
}

func (a *Auth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	a.idToken = ""
	a.mu.Unlock()
	return nil
}

func (a *Auth) CurrentUID(ctx context.Context) (string, error) {
	a.mu.Lock()
	token := a.idToken
	a.mu.Unlock()

	if token == "" {
		return "", errors.New(errors.ErrMissingToken, "no session token")
	}

	decoded, err := a.client.VerifyIDToken(ctx, token)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return "", errors.Wrap(errors.ErrTokenExpired, "session token expired", err)
		}
		return "", errors.Wrap(errors.ErrInternal, "verify session token", err)
	}
	return decoded.UID, nil
}

// classifySignIn 把 Identity Toolkit 的错误标识归类到本仓库的错误码
func classifySignIn(message string) error {
	switch message {
	case "EMAIL_NOT_FOUND":
		return errors.New(errors.ErrUserNotFound, "user not found")
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return errors.New(errors.ErrWrongCredentials, "wrong credentials")
	case "USER_DISABLED":
		return errors.New(errors.ErrUserDisabled, "user disabled")
	case "INVALID_EMAIL":
		return errors.New(errors.ErrInvalidEmail, "invalid email address")
	default:
		return errors.New(errors.ErrUnknown, "sign-in failed: "+message)
	}
}

var _ store.Authenticator = (*Auth)(nil)
