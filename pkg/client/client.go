// Package client is a typed Go client for the SocialFeed REST API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// ErrSessionExpired is returned when a request made with a cached token is
// rejected with 401. The cached token has already been cleared.
var ErrSessionExpired = errors.New("session expired, please log in again")

// APIError is a failure envelope returned by the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// StatusCode returns the HTTP status of err if it is an *APIError, 0 otherwise.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// TokenStore keeps the bearer token between calls.
type TokenStore interface {
	Token() string
	SetToken(token string)
	Clear()
}

// MemoryTokenStore is a TokenStore safe for concurrent use.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *MemoryTokenStore) Clear() {
	s.SetToken("")
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Option configures a Client.
type Option func(*Client)

func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.tokens = store }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(timeout) }
}

// WithHTTPClient routes requests through hc, e.g. an httptest server client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc).SetBaseURL(c.baseURL)
	}
}

type Client struct {
	baseURL string
	http    *resty.Client
	tokens  TokenStore
}

func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	c := &Client{
		baseURL: baseURL,
		http:    resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second),
		tokens:  &MemoryTokenStore{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.SetHeader("Accept", "application/json")
	return c
}

// Token returns the cached bearer token, if any.
func (c *Client) Token() string {
	return c.tokens.Token()
}

// Logout forgets the cached token.
func (c *Client) Logout() {
	c.tokens.Clear()
}

// isCredentialPath reports whether a 401 on path means bad credentials
// rather than an expired session.
func isCredentialPath(path string) bool {
	return strings.HasPrefix(path, "/api/auth/login") || strings.HasPrefix(path, "/api/auth/register")
}

func (c *Client) newRequest(ctx context.Context) (*resty.Request, bool) {
	req := c.http.R().SetContext(ctx)
	token := c.tokens.Token()
	if token != "" {
		req.SetAuthToken(token)
	}
	return req, token != ""
}

// send executes req and decodes the envelope's data into out (if non-nil).
func (c *Client) send(req *resty.Request, hadToken bool, method, path string, out interface{}) (*envelope, error) {
	env := &envelope{}
	req.SetResult(env).SetError(env)

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}

	if resp.IsError() {
		if resp.StatusCode() == http.StatusUnauthorized && hadToken && !isCredentialPath(path) {
			c.tokens.Clear()
			return nil, ErrSessionExpired
		}
		message := env.Error
		if message == "" {
			message = http.StatusText(resp.StatusCode())
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: message}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, errors.Wrapf(err, "decode %s %s", method, path)
		}
	}
	return env, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (*envelope, error) {
	req, hadToken := c.newRequest(ctx)
	if body != nil {
		req.SetBody(body)
	}
	return c.send(req, hadToken, method, path, out)
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, out interface{}) (*envelope, error) {
	req, hadToken := c.newRequest(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	return c.send(req, hadToken, http.MethodGet, path, out)
}

func pathID(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates an account and caches the returned token.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*AuthResult, error) {
	var res AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &res); err != nil {
		return nil, err
	}
	c.tokens.SetToken(res.Token)
	return &res, nil
}

// Login exchanges credentials for a token and caches it.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var res AuthResult
	body := models.LoginRequest{Email: email, Password: password}
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &res); err != nil {
		return nil, err
	}
	c.tokens.SetToken(res.Token)
	return &res, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := c.get(ctx, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// PostPage is one page of the feed.
type PostPage struct {
	Posts      []models.Post
	Pagination Pagination
}

func (c *Client) ListPosts(ctx context.Context, page, limit int) (*PostPage, error) {
	return c.postPage(ctx, "/api/posts", page, limit)
}

func (c *Client) UserPosts(ctx context.Context, userID uint, page, limit int) (*PostPage, error) {
	return c.postPage(ctx, "/api/users/"+pathID(userID)+"/posts", page, limit)
}

func (c *Client) postPage(ctx context.Context, path string, page, limit int) (*PostPage, error) {
	var posts []models.Post
	query := map[string]string{"page": strconv.Itoa(page), "limit": strconv.Itoa(limit)}
	env, err := c.get(ctx, path, query, &posts)
	if err != nil {
		return nil, err
	}
	out := &PostPage{Posts: posts}
	if env.Pagination != nil {
		out.Pagination = *env.Pagination
	}
	return out, nil
}

func (c *Client) TopLikedPosts(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	_, err := c.get(ctx, "/api/posts/top/liked", map[string]string{"limit": strconv.Itoa(limit)}, &posts)
	return posts, err
}

func (c *Client) GetPost(ctx context.Context, postID uint) (*models.PostDetail, error) {
	var post models.PostDetail
	if _, err := c.get(ctx, "/api/posts/"+pathID(postID), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	var post models.Post
	if _, err := c.do(ctx, http.MethodPost, "/api/posts", req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, postID uint) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/posts/"+pathID(postID), nil, nil)
	return err
}

func (c *Client) AddComment(ctx context.Context, postID uint, content string) (*models.Comment, error) {
	var comment models.Comment
	body := models.CreateCommentRequest{Content: content}
	if _, err := c.do(ctx, http.MethodPost, "/api/posts/"+pathID(postID)+"/comments", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) Reply(ctx context.Context, commentID uint, content string) (*models.Comment, error) {
	var comment models.Comment
	body := models.CreateCommentRequest{Content: content}
	if _, err := c.do(ctx, http.MethodPost, "/api/comments/"+pathID(commentID)+"/reply", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

type likeResult struct {
	LikeID uint `json:"like_id"`
}

// LikePost likes a post and returns the new like's ID.
func (c *Client) LikePost(ctx context.Context, postID uint) (uint, error) {
	var res likeResult
	_, err := c.do(ctx, http.MethodPost, "/api/posts/"+pathID(postID)+"/like", nil, &res)
	return res.LikeID, err
}

func (c *Client) UnlikePost(ctx context.Context, postID uint) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/posts/"+pathID(postID)+"/like", nil, nil)
	return err
}

func (c *Client) LikeComment(ctx context.Context, commentID uint) (uint, error) {
	var res likeResult
	_, err := c.do(ctx, http.MethodPost, "/api/comments/"+pathID(commentID)+"/like", nil, &res)
	return res.LikeID, err
}

func (c *Client) UnlikeComment(ctx context.Context, commentID uint) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/comments/"+pathID(commentID)+"/like", nil, nil)
	return err
}

func (c *Client) Friends(ctx context.Context) ([]models.Friend, error) {
	var friends []models.Friend
	_, err := c.get(ctx, "/api/friends", nil, &friends)
	return friends, err
}

func (c *Client) FriendRequests(ctx context.Context) ([]models.PendingFriendRequest, error) {
	var requests []models.PendingFriendRequest
	_, err := c.get(ctx, "/api/friends/requests", nil, &requests)
	return requests, err
}

// SendFriendRequest returns the new friendship's ID.
func (c *Client) SendFriendRequest(ctx context.Context, recipientID uint) (uint, error) {
	var res struct {
		FriendshipID uint `json:"friendship_id"`
	}
	body := models.FriendRequestBody{RecipientID: recipientID}
	_, err := c.do(ctx, http.MethodPost, "/api/friends/request", body, &res)
	return res.FriendshipID, err
}

func (c *Client) AcceptFriendRequest(ctx context.Context, friendshipID uint) error {
	_, err := c.do(ctx, http.MethodPost, "/api/friends/"+pathID(friendshipID)+"/accept", nil, nil)
	return err
}

func (c *Client) RemoveFriend(ctx context.Context, friendshipID uint) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/friends/"+pathID(friendshipID), nil, nil)
	return err
}

func (c *Client) Follow(ctx context.Context, userID uint) error {
	_, err := c.do(ctx, http.MethodPost, "/api/followers/"+pathID(userID)+"/follow", nil, nil)
	return err
}

func (c *Client) Unfollow(ctx context.Context, userID uint) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/followers/"+pathID(userID)+"/unfollow", nil, nil)
	return err
}

func (c *Client) Followers(ctx context.Context, userID uint) ([]models.FollowEntry, error) {
	var entries []models.FollowEntry
	_, err := c.get(ctx, "/api/followers/"+pathID(userID)+"/followers", nil, &entries)
	return entries, err
}

func (c *Client) Following(ctx context.Context, userID uint) ([]models.FollowEntry, error) {
	var entries []models.FollowEntry
	_, err := c.get(ctx, "/api/followers/"+pathID(userID)+"/following", nil, &entries)
	return entries, err
}

func (c *Client) FollowStats(ctx context.Context, userID uint) (*models.FollowStats, error) {
	var stats models.FollowStats
	if _, err := c.get(ctx, "/api/followers/"+pathID(userID)+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) IsFollowing(ctx context.Context, userID uint) (bool, error) {
	var res struct {
		IsFollowing bool `json:"isFollowing"`
	}
	_, err := c.get(ctx, "/api/followers/"+pathID(userID)+"/check", nil, &res)
	return res.IsFollowing, err
}

// Notifications is the payload of the notification list.
type Notifications struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
	Total         int64                 `json:"total"`
}

// Notifications lists the newest notifications; limit 0 uses the server default.
func (c *Client) Notifications(ctx context.Context, limit int) (*Notifications, error) {
	var query map[string]string
	if limit > 0 {
		query = map[string]string{"limit": strconv.Itoa(limit)}
	}
	var res Notifications
	if _, err := c.get(ctx, "/api/notifications", query, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var res struct {
		UnreadCount int64 `json:"unread_count"`
	}
	_, err := c.get(ctx, "/api/notifications/unread-count", nil, &res)
	return res.UnreadCount, err
}

// MarkRead marks the given notifications read. A nil ids marks all of them.
func (c *Client) MarkRead(ctx context.Context, ids []uint) (int64, error) {
	body := map[string]interface{}{}
	if ids != nil {
		body["notificationIds"] = ids
	}
	var res struct {
		Updated int64 `json:"updated"`
	}
	_, err := c.do(ctx, http.MethodPost, "/api/notifications/mark-read", body, &res)
	return res.Updated, err
}

func (c *Client) DeleteNotification(ctx context.Context, notificationID uint) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/notifications/"+pathID(notificationID), nil, nil)
	return err
}

func (c *Client) SearchUsers(ctx context.Context, query string, limit int) ([]models.UserCompact, error) {
	var users []models.UserCompact
	params := map[string]string{"q": query}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	_, err := c.get(ctx, "/api/users/search", params, &users)
	return users, err
}

// UploadResult describes an uploaded image.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimetype"`
}

// UploadImage sends r as the multipart field "image".
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	req, hadToken := c.newRequest(ctx)
	req.SetFileReader("image", filename, r)

	var res UploadResult
	if _, err := c.send(req, hadToken, http.MethodPost, "/api/upload/image", &res); err != nil {
		return nil, err
	}
	return &res, nil
}
