package handler

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"skill-hire/internal/delivery/http/middleware"
	"skill-hire/internal/domain/user"
	"skill-hire/internal/pkg/response"
	"skill-hire/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"
)

const msgBadRequest = "Bad request"

func currentUser(c fiber.Ctx) (user.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return user.User{}, middleware.NewAppError(fiber.StatusUnauthorized, middleware.MsgAuthRequired, nil, nil)
	}
	return u, nil
}

// paramID parses a positive int64 path parameter.
func paramID(c fiber.Ctx, name, msg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, msg, nil, err)
	}
	return id, nil
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseQueryFloat(c fiber.Ctx, key string) (*float64, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = errors.New("not a finite number")
	}
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return &v, nil
}

// formUpload reads an optional multipart file. A missing field or a
// non-multipart body yields nil; an unreadable form is a 400.
func formUpload(c fiber.Ctx, field string) (*usecase.Upload, error) {
	fh, err := c.FormFile(field)
	switch {
	case errors.Is(err, fasthttp.ErrMissingFile), errors.Is(err, fasthttp.ErrNoMultipartForm):
		return nil, nil
	case err != nil:
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Malformed multipart form", nil, err)
	case fh == nil:
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, msgBadRequest, nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, msgBadRequest, nil, err)
	}
	return &usecase.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func bindBody(c fiber.Ctx, out any) error {
	if len(c.Body()) == 0 && !isMultipart(c) {
		return nil
	}
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, msgBadRequest, nil, err)
	}
	return nil
}

func isMultipart(c fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}

// commonError maps the errors every usecase may return. ok is false when
// the caller has to decide.
func commonError(err error) (*middleware.AppError, bool) {
	var inErr *usecase.InputError
	switch {
	case errors.As(err, &inErr):
		return middleware.NewAppError(fiber.StatusBadRequest, inErr.Message, nil, err), true
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, msgBadRequest, nil, err), true
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Access denied", nil, err), true
	case errors.Is(err, usecase.ErrFileTooLarge):
		return middleware.NewAppError(fiber.StatusRequestEntityTooLarge, "File too large", nil, err), true
	case errors.Is(err, usecase.ErrUnsupportedFileType):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unsupported file type", nil, err), true
	default:
		return nil, false
	}
}

func internalError(err error) error {
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
