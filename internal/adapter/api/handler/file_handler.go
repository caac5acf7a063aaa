package handler

import (
	"fmt"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"

	"sharesphere/internal/domain/entity"
	"sharesphere/internal/usecase"
	"sharesphere/pkg/errors"
	"sharesphere/pkg/logger"
	"sharesphere/pkg/response"
)

type FileHandler struct {
	fileUseCase     *usecase.FileUseCase
	downloadUseCase *usecase.DownloadUseCase
	maxFileSize     int64
}

func NewFileHandler(fileUseCase *usecase.FileUseCase, downloadUseCase *usecase.DownloadUseCase, maxFileSize int64) *FileHandler {
	return &FileHandler{
		fileUseCase:     fileUseCase,
		downloadUseCase: downloadUseCase,
		maxFileSize:     maxFileSize,
	}
}

func (h *FileHandler) UploadFile(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("No file uploaded", err))
	}

	if file.Size > h.maxFileSize {
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil))
	}

	user := getDbUserFromContext(c)
	if user == nil {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	uploaded, credits, err := h.fileUseCase.Upload(c.Request().Context(), user, usecase.UploadFileInput{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Size:        file.Size,
		Body:        src,
	})
	if err != nil {
		return response.Error(c, err)
	}

	logger.Debug("File %s uploaded by %s", uploaded.ID, user.FirebaseUID)

	return response.Created(c, map[string]interface{}{
		"id":       uploaded.ID,
		"filename": uploaded.FileName,
		"credits":  credits,
	})
}

func (h *FileHandler) ListFiles(c echo.Context) error {
	var req struct {
		FileType string `query:"fileType"`
		MinSize  int64  `query:"minSize"`
		MaxSize  int64  `query:"maxSize"`
		SortBy   string `query:"sortBy" validate:"omitempty,oneof=newest oldest most_downloads most_likes"`
	}

	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid query parameters", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	files, err := h.fileUseCase.List(c.Request().Context(), usecase.ListFilesInput{
		FileType: req.FileType,
		MinSize:  req.MinSize,
		MaxSize:  req.MaxSize,
		SortBy:   req.SortBy,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, files)
}

func (h *FileHandler) PreviewFile(c echo.Context) error {
	attrs, rc, err := h.fileUseCase.Preview(c.Request().Context(), c.Param("fileID"))
	if err != nil {
		return response.Error(c, err)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentType, attrs.ContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", attrs.Filename))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(attrs.Size, 10))

	if _, err := io.Copy(c.Response().Writer, rc); err != nil {
		logger.Error("Failed to stream file preview: %v", err)
		return err
	}

	return nil
}

// FetchFile is the raw unauthenticated retrieval path, keyed by stored
// filename rather than catalog id.
func (h *FileHandler) FetchFile(c echo.Context) error {
	attrs, rc, err := h.fileUseCase.FetchByName(c.Request().Context(), c.Param("filename"))
	if err != nil {
		return response.Error(c, err)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentType, attrs.ContentType)

	if _, err := io.Copy(c.Response().Writer, rc); err != nil {
		logger.Error("Failed to stream file: %v", err)
		return err
	}

	return nil
}

func (h *FileHandler) DownloadFile(c echo.Context) error {
	uid := getUserIDFromContext(c)
	if uid == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	file, rc, err := h.downloadUseCase.Download(c.Request().Context(), uid, c.Param("fileID"))
	if err != nil {
		return response.Error(c, err)
	}
	defer rc.Close()

	filename := file.FileName
	if filename == "" {
		filename = "downloaded_file"
	}

	c.Response().Header().Set(echo.HeaderContentType, file.FileType)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	if _, err := io.Copy(c.Response().Writer, rc); err != nil {
		logger.Error("Failed to stream file download: %v", err)
		return err
	}

	return nil
}

func (h *FileHandler) LikeFile(c echo.Context) error {
	file, err := h.fileUseCase.Like(c.Request().Context(), c.Param("fileID"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"likes": file.Likes,
	})
}

func (h *FileHandler) DeleteFile(c echo.Context) error {
	uid := getUserIDFromContext(c)
	if uid == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	if err := h.fileUseCase.Delete(c.Request().Context(), c.Param("fileID"), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "File deleted successfully",
	})
}

func getUserIDFromContext(c echo.Context) string {
	if uid, ok := c.Get("uid").(string); ok {
		return uid
	}
	return ""
}

func getDbUserFromContext(c echo.Context) *entity.User {
	if user, ok := c.Get("dbUser").(*entity.User); ok {
		return user
	}
	return nil
}
