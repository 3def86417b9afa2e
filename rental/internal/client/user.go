package client

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Astemirdum/rental-service/rental/config"
	"github.com/Astemirdum/rental-service/rental/internal/model"
)

type User struct {
	base
}

func NewUser(log *zap.Logger, srv config.Collaborator, cfg config.HTTPClient) *User {
	return &User{base: newBase(log.Named("user"), srv, cfg)}
}

func (c *User) GetUser(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", id), "", nil, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}
