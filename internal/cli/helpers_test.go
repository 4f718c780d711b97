package cli

import (
	"context"
	"strconv"

	"github.com/Debmalya06/Mess-Milega-sub000/internal/infrastructure/storage"
)

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func writeToken(path, token string) error {
	return storage.NewFileTokenStore(path).Save(context.Background(), token)
}
