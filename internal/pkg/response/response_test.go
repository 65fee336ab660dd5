package response

import (
	"context"
	"fmt"
	"testing"

	"github.com/dd13556li/count/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
)

func TestNewFailedStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "fiber error", err: fiber.NewError(fiber.StatusNotFound, "game not found"), want: fiber.StatusNotFound},
		{name: "wrapped fiber error", err: fmt.Errorf("op: %w", fiber.ErrConflict), want: fiber.StatusConflict},
		{name: "fields", err: validate.NewFieldsError(map[string]string{"mode": "bad"}), want: fiber.StatusBadRequest},
		{name: "canceled", err: context.Canceled, want: fiber.StatusRequestTimeout},
		{name: "other", err: fmt.Errorf("boom"), want: fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewFailed("failed", tt.err, nil)
			if res.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", res.StatusCode, tt.want)
			}
			if res.Success {
				t.Fatal("failed response marked successful")
			}
		})
	}
}

func TestStatusOverride(t *testing.T) {
	res := NewSuccess("created", nil, nil).Status(fiber.StatusCreated)
	if res.StatusCode != fiber.StatusCreated || !res.Success {
		t.Fatalf("response = %+v", res)
	}
}
