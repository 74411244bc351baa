package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/lumapark/venue-booking/internal/i18n"
)

// allowed upload extensions; everything else is rejected outright.
var allowedUploadExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".svg":  true,
	".pdf":  true,
}

// FileHandler stores and lists uploaded media for the admin CMS.
// Files land under UploadDir/<category>/ with a random name; the
// returned public path is what gets stored on events and posts.
type FileHandler struct {
	UploadDir string
}

// NewFileHandler constructs a FileHandler rooted at dir.
func NewFileHandler(dir string) *FileHandler {
	if dir == "" {
		dir = "uploads"
	}
	return &FileHandler{UploadDir: dir}
}

// Upload handles POST /v1/admin/upload with multipart fields "file"
// and "category".
func (h *FileHandler) Upload(c echo.Context) error {
	lang := langFrom(c)
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	category := sanitizeCategory(c.FormValue("category"))
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedUploadExt[ext] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported file type"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": i18n.T(lang, i18n.KeyUploadFailed)})
	}
	defer src.Close()

	dir := filepath.Join(h.UploadDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": i18n.T(lang, i18n.KeyUploadFailed)})
	}
	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": i18n.T(lang, i18n.KeyUploadFailed)})
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": i18n.T(lang, i18n.KeyUploadFailed)})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success":    true,
		"publicPath": "/" + filepath.ToSlash(filepath.Join(h.UploadDir, category, name)),
	})
}

// List handles GET /v1/admin/files, returning the public paths of all
// uploaded files.
func (h *FileHandler) List(c echo.Context) error {
	files := make([]string, 0)
	err := filepath.WalkDir(h.UploadDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			// unreadable entries are skipped
			return nil
		}
		files = append(files, "/"+filepath.ToSlash(path))
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list files"})
	}
	return c.JSON(http.StatusOK, echo.Map{"files": files})
}

// sanitizeCategory keeps category names to a single safe path segment.
func sanitizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "misc"
	}
	return b.String()
}
