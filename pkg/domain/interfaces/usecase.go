package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/Proximyst/typewriters/pkg/domain/model"
)

type UseCase interface {
	Poll(ctx context.Context) ([]*model.UpdateEvent, error)
	Targets() []model.Target
}
