package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/streaklit/internal/models"
)

// EncodeState serializes the state document in its persisted form
func EncodeState(state models.State) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}
