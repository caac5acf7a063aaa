package handler

import (
	"sharesphere/internal/usecase"
)

var (
	fileHandler *FileHandler
	userHandler *UserHandler
)

func Setup(
	fileUseCase *usecase.FileUseCase,
	downloadUseCase *usecase.DownloadUseCase,
	userUseCase *usecase.UserUseCase,
	maxUploadSize int64,
) {
	fileHandler = NewFileHandler(fileUseCase, downloadUseCase, maxUploadSize)
	userHandler = NewUserHandler(userUseCase)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}
