package favorites

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/thushan/holocron/internal/core/ports"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func encodeEntry(entry ports.FavoriteEntry) ([]byte, error) {
	return json.Marshal(entry)
}

func decodeEntry(data []byte) (ports.FavoriteEntry, error) {
	var entry ports.FavoriteEntry
	err := json.Unmarshal(data, &entry)
	return entry, err
}
