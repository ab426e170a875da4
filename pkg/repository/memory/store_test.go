package memory_test

import (
	"testing"

	"github.com/Durgatriveni/Task-backend/pkg/auth"
	"github.com/Durgatriveni/Task-backend/pkg/repository/memory"
	"github.com/Durgatriveni/Task-backend/pkg/repository/repotest"
	"github.com/Durgatriveni/Task-backend/pkg/task"
)

func TestStoreContract(t *testing.T) {
	repotest.Run(t, func(t *testing.T) (auth.UserRepository, task.Repository) {
		s := memory.NewStore()
		return s, s
	})
}
