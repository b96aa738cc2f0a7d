// Package api exposes the grievance portal HTTP endpoints.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/openseva/grievance/internal/auth"
	"github.com/openseva/grievance/internal/classifier"
	"github.com/openseva/grievance/internal/config"
	"github.com/openseva/grievance/internal/database"
	"github.com/openseva/grievance/internal/domain"
)

// Logger defines the logging interface
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ComplaintsStore is the complaint persistence surface the handlers need.
type ComplaintsStore interface {
	Create(ctx context.Context, c *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	ListRecentByEmail(ctx context.Context, email string, since time.Time, limit int) ([]domain.Complaint, error)
	List(ctx context.Context, f database.ComplaintFilter) ([]domain.Complaint, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Complaint, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

// UsersStore is the account persistence surface the handlers need.
type UsersStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ImageStore saves uploaded evidence images.
type ImageStore interface {
	Save(r io.Reader, originalName string) (string, error)
}

// Notifier sends complaint lifecycle emails.
type Notifier interface {
	SendSubmissionConfirmation(c *domain.Complaint)
	SendStatusUpdate(c *domain.Complaint)
}

// MetricsRecorder counts portal events. All methods are fire-and-forget.
type MetricsRecorder interface {
	RecordSubmission(category domain.Category, priority domain.Priority, isDuplicate bool)
	RecordStatusUpdate(status domain.Status)
	RecordAnalysis(duration time.Duration)
}

// Handler handles HTTP requests for the grievance API
type Handler struct {
	engine     *classifier.Engine
	complaints ComplaintsStore
	users      UsersStore
	images     ImageStore
	notifier   Notifier
	metrics    MetricsRecorder
	jwt        *auth.JWTManager
	detection  config.DetectionConfig
	maxRunes   int
	logger     Logger
}

// NewHandler creates a new API handler. The notifier, metrics recorder,
// and image store may be nil, disabling the corresponding side effects.
func NewHandler(
	engine *classifier.Engine,
	complaints ComplaintsStore,
	users UsersStore,
	imageStore ImageStore,
	notifier Notifier,
	metrics MetricsRecorder,
	jwtMgr *auth.JWTManager,
	cfg *config.Config,
	logger Logger,
) *Handler {
	return &Handler{
		engine:     engine,
		complaints: complaints,
		users:      users,
		images:     imageStore,
		notifier:   notifier,
		metrics:    metrics,
		jwt:        jwtMgr,
		detection:  cfg.Detection,
		maxRunes:   cfg.Service.MaxTextRunes,
		logger:     logger,
	}
}

// SubmitComplaint handles POST /api/v1/complaints.
// Accepts JSON or multipart form data; the multipart form may carry an
// "image" file part. The complaint is classified, checked against the
// submitter's recent complaints, stored, and acknowledged by email.
func (h *Handler) SubmitComplaint(c *gin.Context) {
	var req SubmitComplaintRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("Invalid complaint submission", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Submitter emails are stored lowercased so case-variant resubmissions
	// still land in the same duplicate candidate window.
	req.Email = strings.ToLower(req.Email)
	req.ComplaintText = strings.TrimSpace(req.ComplaintText)
	if req.ComplaintText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "complaint_text is required"})
		return
	}
	if utf8.RuneCountInString(req.ComplaintText) > h.maxRunes {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "complaint_text exceeds maximum length of " + strconv.Itoa(h.maxRunes) + " characters",
		})
		return
	}

	imageURL, ok := h.saveUploadedImage(c)
	if !ok {
		return
	}

	start := time.Now()
	analysis := h.engine.Analyze(req.ComplaintText, imageURL != "")
	if h.metrics != nil {
		h.metrics.RecordAnalysis(time.Since(start))
	}

	duplicate := h.runDuplicateCheck(c.Request.Context(), req.ComplaintText, analysis.Category, req.Email, req.Location)

	complaint := &domain.Complaint{
		Name:          req.Name,
		Email:         req.Email,
		ComplaintText: req.ComplaintText,
		Location:      req.Location,
		ImageURL:      imageURL,
		Category:      analysis.Category,
		Priority:      analysis.Priority,
		Department:    analysis.Department,
		Status:        domain.StatusPending,
		IsDuplicate:   duplicate.IsDuplicate,
		DuplicateOf:   duplicate.DuplicateOf,
	}

	if err := h.complaints.Create(c.Request.Context(), complaint); err != nil {
		h.logger.Error("Failed to store complaint", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store complaint"})
		return
	}

	h.logger.Info("Complaint registered",
		"complaint_id", complaint.ID,
		"category", complaint.Category,
		"priority", complaint.Priority,
		"is_duplicate", complaint.IsDuplicate,
	)

	if h.metrics != nil {
		h.metrics.RecordSubmission(complaint.Category, complaint.Priority, complaint.IsDuplicate)
	}
	if h.notifier != nil {
		h.notifier.SendSubmissionConfirmation(complaint)
	}

	c.JSON(http.StatusCreated, SubmitComplaintResponse{
		Complaint: complaint,
		Duplicate: duplicate,
	})
}

// saveUploadedImage stores the optional multipart "image" part. Returns the
// stored URL (empty when no image was sent) and whether processing should
// continue; on failure it writes the error response itself.
func (h *Handler) saveUploadedImage(c *gin.Context) (string, bool) {
	if h.images == nil || !strings.HasPrefix(c.ContentType(), "multipart/") {
		return "", true
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No image part is fine.
		return "", true
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.logger.Warn("Failed to open uploaded image", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable image upload"})
		return "", false
	}
	defer f.Close()

	url, err := h.images.Save(f, fileHeader.Filename)
	if err != nil {
		h.logger.Warn("Rejected image upload", "filename", fileHeader.Filename, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return url, true
}

// runDuplicateCheck loads the submitter's candidate window and compares the
// draft against it. Storage errors degrade to "no duplicate" rather than
// failing the submission.
func (h *Handler) runDuplicateCheck(ctx context.Context, text string, category domain.Category, email, location string) domain.DuplicateCheck {
	since := time.Now().AddDate(0, 0, -h.detection.WindowDays)
	recent, err := h.complaints.ListRecentByEmail(ctx, strings.ToLower(email), since, h.detection.WindowLimit)
	if err != nil {
		h.logger.Warn("Candidate window lookup failed", "email", email, "error", err)
		return domain.DuplicateCheck{}
	}

	candidates := make([]domain.Candidate, len(recent))
	for i, prior := range recent {
		candidates[i] = domain.Candidate{
			ID:       prior.ID,
			Text:     prior.ComplaintText,
			Category: prior.Category,
			Location: prior.Location,
		}
	}

	return h.engine.CheckDuplicate(text, category, location, candidates)
}

// GetComplaint handles GET /api/v1/complaints/:id.
// Citizens may only fetch their own complaints; admins may fetch any.
func (h *Handler) GetComplaint(c *gin.Context) {
	id := c.Param("id")

	complaint, err := h.complaints.GetByID(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to fetch complaint", "complaint_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaint"})
		return
	}

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	if claims.Role != domain.RoleAdmin && !strings.EqualFold(claims.Email, complaint.Email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your complaint"})
		return
	}

	c.JSON(http.StatusOK, complaint)
}

// ListComplaints handles GET /api/v1/complaints.
// Citizens always list their own complaints; admins may filter by
// category, priority, status, email, has_image, and is_duplicate.
func (h *Handler) ListComplaints(c *gin.Context) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	filter := database.ComplaintFilter{
		Category: domain.Category(c.Query("category")),
		Priority: domain.Priority(c.Query("priority")),
		Status:   domain.Status(c.Query("status")),
		Email:    strings.ToLower(c.Query("email")),
	}
	if filter.HasImage, ok = boolQuery(c, "has_image"); !ok {
		return
	}
	if filter.IsDuplicate, ok = boolQuery(c, "is_duplicate"); !ok {
		return
	}
	if claims.Role != domain.RoleAdmin {
		filter.Email = strings.ToLower(claims.Email)
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(database.DefaultPageSize)))

	complaints, total, err := h.complaints.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list complaints", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list complaints"})
		return
	}

	if complaints == nil {
		complaints = []domain.Complaint{}
	}

	c.JSON(http.StatusOK, ComplaintListResponse{
		Complaints: complaints,
		Total:      total,
		Page:       filter.Page,
		PerPage:    filter.PageSize,
	})
}

// boolQuery parses an optional tri-state boolean query parameter. Returns
// ok=false after writing a 400 response when the value is malformed.
func boolQuery(c *gin.Context, name string) (*bool, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " filter: " + v})
		return nil, false
	}
	return &b, true
}

// UpdateStatus handles PATCH /api/v1/complaints/:id/status (admin).
func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status: " + string(req.Status)})
		return
	}

	complaint, err := h.complaints.UpdateStatus(c.Request.Context(), id, req.Status)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to update status", "complaint_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	h.logger.Info("Complaint status updated",
		"complaint_id", complaint.ID,
		"status", complaint.Status,
	)

	if h.metrics != nil {
		h.metrics.RecordStatusUpdate(complaint.Status)
	}
	if h.notifier != nil {
		h.notifier.SendStatusUpdate(complaint)
	}

	c.JSON(http.StatusOK, complaint)
}

// Analyze handles POST /api/v1/complaints/analyze.
// Classifies a complaint text without storing anything.
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if utf8.RuneCountInString(req.Text) > h.maxRunes {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "text exceeds maximum length of " + strconv.Itoa(h.maxRunes) + " characters",
		})
		return
	}

	start := time.Now()
	analysis := h.engine.Analyze(req.Text, req.HasImage)
	if h.metrics != nil {
		h.metrics.RecordAnalysis(time.Since(start))
	}

	c.JSON(http.StatusOK, analysis)
}

// CheckDuplicate handles POST /api/v1/complaints/check-duplicate.
// Compares a draft complaint against the submitter's recent complaints
// without storing anything.
func (h *Handler) CheckDuplicate(c *gin.Context) {
	var req CheckDuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Category != "" && !req.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category: " + string(req.Category)})
		return
	}

	result := h.runDuplicateCheck(c.Request.Context(), req.Text, req.Category, req.Email, req.Location)
	c.JSON(http.StatusOK, result)
}

// Analytics handles GET /api/v1/analytics (admin).
func (h *Handler) Analytics(c *gin.Context) {
	stats, err := h.complaints.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to aggregate stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Register handles POST /api/v1/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Password must be at least " + strconv.Itoa(auth.MinPasswordLength) + " characters",
		})
		return
	}
	if err != nil {
		h.logger.Error("Failed to hash password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Role:         domain.RoleCitizen,
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		h.logger.Error("Failed to create user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	h.issueToken(c, http.StatusCreated, user)
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if errors.Is(err, database.ErrNotFound) || (err == nil && !auth.CheckPassword(user.PasswordHash, req.Password)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to fetch user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	h.issueToken(c, http.StatusOK, user)
}

func (h *Handler) issueToken(c *gin.Context, status int, user *domain.User) {
	token, err := h.jwt.GenerateToken(user)
	if err != nil {
		h.logger.Error("Failed to sign token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	c.JSON(status, AuthResponse{Token: token, User: user})
}
