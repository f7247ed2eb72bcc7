package emulator

import (
	"encoding/base64"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/storage"
	"github.com/SangJLee1103/InstagramClone/internal/store"
	"github.com/SangJLee1103/InstagramClone/internal/util"
)

type account struct {
	uid          string
	email        string
	passwordHash []byte
	disabled     bool
}

// Server 为本地开发后端：通过HTTP暴露文档库、对象存储与账户接口，
// 供 rest 客户端在没有托管后端时使用。会话为 Bearer JWT。
type Server struct {
	docs  store.DocumentStore
	blobs storage.Provider

	mu       sync.RWMutex
	accounts map[string]*account
	tokenTTL time.Duration
}

// NewServer 创建一个新的 Server 实例
func NewServer(docs store.DocumentStore, blobs storage.Provider) *Server {
	return &Server{
		docs:     docs,
		blobs:    blobs,
		accounts: make(map[string]*account),
		tokenTTL: 24 * time.Hour,
	}
}

// Router 组装全部路由
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.POST("/accounts/register", s.register)
		api.POST("/accounts/login", s.login)

		authorized := api.Group("/", s.authMiddleware())
		{
			authorized.GET("/accounts/me", s.me)
			authorized.GET("/documents", s.getDocument)
			authorized.GET("/documents/list", s.listDocuments)
			authorized.GET("/documents/count", s.countDocuments)
			authorized.GET("/documents/exists", s.documentExists)
			authorized.POST("/documents", s.writeDocument)
			authorized.PATCH("/documents", s.updateDocument)
			authorized.DELETE("/documents", s.deleteDocument)
			authorized.POST("/blobs", s.uploadBlob)
		}
	}
	return r
}

func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		} else {
			token = ""
		}

		uid, err := util.ValidateToken(token)
		if err != nil {
			errors.HandleError(c, err)
			c.Abort()
			return
		}
		c.Set("uid", uid)
		c.Next()
	}
}

func (s *Server) register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request body", err))
		return
	}

	if !util.IsValidEmail(req.Email) {
		errors.HandleError(c, errors.New(errors.ErrInvalidEmail, "invalid email format"))
		return
	}
	if !util.IsPasswordStrong(req.Password) {
		errors.HandleError(c, errors.New(errors.ErrWeakPassword, "password must be at least 6 characters"))
		return
	}

	s.mu.Lock()
	if _, ok := s.accounts[req.Email]; ok {
		s.mu.Unlock()
		errors.HandleError(c, errors.New(errors.ErrEmailAlreadyInUse, "email already in use"))
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.mu.Unlock()
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "hash password", err))
		return
	}
	acc := &account{uid: uuid.NewString(), email: req.Email, passwordHash: hash}
	s.accounts[req.Email] = acc
	s.mu.Unlock()

	token, err := util.GenerateToken(acc.uid, s.tokenTTL)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "generate token", err))
		return
	}

	util.Logger.Info("emulator account registered", zap.String("uid", acc.uid))
	errors.HandleSuccess(c, gin.H{"uid": acc.uid, "token": token}, "registered")
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request body", err))
		return
	}

	s.mu.RLock()
	acc, ok := s.accounts[req.Email]
	s.mu.RUnlock()

	if !ok {
		errors.HandleError(c, errors.New(errors.ErrUserNotFound, "no account for email"))
		return
	}
	if acc.disabled {
		errors.HandleError(c, errors.New(errors.ErrUserDisabled, "account is disabled"))
		return
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)); err != nil {
		errors.HandleError(c, errors.New(errors.ErrWrongCredentials, "wrong password"))
		return
	}

	token, err := util.GenerateToken(acc.uid, s.tokenTTL)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "generate token", err))
		return
	}
	errors.HandleSuccess(c, gin.H{"uid": acc.uid, "token": token}, "logged in")
}

func (s *Server) me(c *gin.Context) {
	errors.HandleSuccess(c, gin.H{"uid": c.GetString("uid")}, "")
}

func (s *Server) getDocument(c *gin.Context) {
	fields, err := s.docs.Get(c.Request.Context(), c.Query("collection"), c.Query("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"fields": fields}, "")
}

func (s *Server) listDocuments(c *gin.Context) {
	docs, err := s.docs.List(c.Request.Context(), c.Query("collection"), queryOptions(c)...)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	out := make([]gin.H, 0, len(docs))
	for _, doc := range docs {
		out = append(out, gin.H{"id": doc.ID, "fields": doc.Fields})
	}
	errors.HandleSuccess(c, gin.H{"documents": out}, "")
}

func (s *Server) countDocuments(c *gin.Context) {
	count, err := s.docs.Count(c.Request.Context(), c.Query("collection"), queryOptions(c)...)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"count": count}, "")
}

func (s *Server) documentExists(c *gin.Context) {
	exists, err := s.docs.Exists(c.Request.Context(), c.Query("collection"), c.Query("id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"exists": exists}, "")
}

// writeDocument 写入文档：携带 id 时为 Set，否则为 Add 并返回分配的 id
func (s *Server) writeDocument(c *gin.Context) {
	var req struct {
		Collection string       `json:"collection" binding:"required"`
		ID         string       `json:"id"`
		Fields     store.Fields `json:"fields"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request body", err))
		return
	}
	if req.Fields == nil {
		req.Fields = store.Fields{}
	}

	if req.ID != "" {
		if err := s.docs.Set(c.Request.Context(), req.Collection, req.ID, req.Fields); err != nil {
			errors.HandleError(c, err)
			return
		}
		errors.HandleSuccess(c, gin.H{"id": req.ID}, "")
		return
	}

	id, err := s.docs.Add(c.Request.Context(), req.Collection, req.Fields)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"id": id}, "")
}

func (s *Server) updateDocument(c *gin.Context) {
	var req struct {
		Collection string       `json:"collection" binding:"required"`
		ID         string       `json:"id" binding:"required"`
		Fields     store.Fields `json:"fields" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request body", err))
		return
	}

	if err := s.docs.Update(c.Request.Context(), req.Collection, req.ID, req.Fields); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "updated")
}

func (s *Server) deleteDocument(c *gin.Context) {
	if err := s.docs.Delete(c.Request.Context(), c.Query("collection"), c.Query("id")); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "deleted")
}

func (s *Server) uploadBlob(c *gin.Context) {
	var req struct {
		Path        string `json:"path" binding:"required"`
		ContentType string `json:"contentType"`
		Data        string `json:"data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid request body", err))
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid base64 data", err))
		return
	}

	url, err := s.blobs.Upload(c.Request.Context(), req.Path, data, req.ContentType)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"url": url}, "")
}

func queryOptions(c *gin.Context) []store.QueryOption {
	var opts []store.QueryOption
	if field := c.Query("where_field"); field != "" {
		opts = append(opts, store.WhereEq(field, c.Query("where_value")))
	}
	if orderBy := c.Query("order_by"); orderBy != "" {
		desc, _ := strconv.ParseBool(c.Query("desc"))
		if desc {
			opts = append(opts, store.OrderByDesc(orderBy))
		}
	}
	return opts
}
