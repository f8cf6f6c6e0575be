package handler

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/items-service/internal/auth"
	"github.com/vyrodovalexey/items-service/internal/model"
	"github.com/vyrodovalexey/items-service/internal/validate"
)

// FormsHandler handles the form login and file upload endpoints.
type FormsHandler struct {
	creds          *auth.Credentials
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewFormsHandler creates a new FormsHandler instance.
func NewFormsHandler(creds *auth.Credentials, maxUploadBytes int64, logger *zap.Logger) *FormsHandler {
	return &FormsHandler{
		creds:          creds,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// RegisterRoutes registers the login and upload routes with the router.
func (h *FormsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/login/", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/uploadfile/", h.UploadFile).Methods(http.MethodPost)
}

// Login handles POST /login/ requests with form-encoded credentials.
func (h *FormsHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("malformed login form", zap.Error(err))
		writeValidationError(w, h.logger, &validate.Error{
			Kind: validate.KindBody,
			Fields: []model.FieldError{
				{Field: "body", Message: "malformed form data"},
			},
		})
		return
	}

	if verr := validate.FormFields(r.PostForm, "username", "password"); verr != nil {
		writeValidationError(w, h.logger, verr)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	if err := h.creds.Verify(username, password); err != nil {
		h.logger.Warn("login rejected",
			zap.String("username", username),
			zap.String("remote_addr", r.RemoteAddr),
		)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Invalid credentials"))
		return
	}

	writeJSON(w, h.logger, http.StatusOK, model.LoginResponse{Status: "success"})
}

// UploadFile handles POST /uploadfile/ requests with a multipart file part
// named "file". The response reports the filename and the byte length of the
// uploaded content.
func (h *FormsHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.logger.Warn("malformed multipart body", zap.Error(err))
		writeValidationError(w, h.logger, &validate.Error{
			Kind: validate.KindBody,
			Fields: []model.FieldError{
				{Field: "body", Message: "malformed multipart body"},
			},
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeValidationError(w, h.logger, &validate.Error{
			Kind: validate.KindBody,
			Fields: []model.FieldError{
				{Field: "file", Message: "field required"},
			},
		})
		return
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("reading uploaded file failed", zap.Error(err))
		writeJSON(w, h.logger, http.StatusInternalServerError, model.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, model.UploadResponse{
		Filename: header.Filename,
		Size:     len(contents),
	})
}
