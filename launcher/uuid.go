package launcher

import (
	"crypto/md5"
	"strings"

	"github.com/google/uuid"
)

// OfflineUUID returns the name based version 3 uuid the game server
// derives for an unauthenticated player, without dashes.
func OfflineUUID(username string) string {
	sum := md5.Sum([]byte("OfflinePlayer:" + username))
	id := uuid.UUID(sum)
	id[6] = (id[6] & 0x0f) | 0x30
	id[8] = (id[8] & 0x3f) | 0x80
	return strings.ReplaceAll(id.String(), "-", "")
}
