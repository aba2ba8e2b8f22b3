package rooms

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stayharbor/stayharbor-backend/pkg/db/models"
	pkgerrors "github.com/stayharbor/stayharbor-backend/pkg/errors"
)

// SeedEntry maps a room number to a room type name.
type SeedEntry struct {
	RoomNumber string
	RoomType   string
}

// DefaultSeed is the reference inventory loaded by cmd/seed.
var DefaultSeed = []SeedEntry{
	{RoomNumber: "101", RoomType: "Standard"},
	{RoomNumber: "102", RoomType: "Standard"},
	{RoomNumber: "201", RoomType: "Deluxe"},
	{RoomNumber: "202", RoomType: "Deluxe"},
	{RoomNumber: "301", RoomType: "Suite"},
}

// Seed inserts the given inventory, skipping rows that already exist so it is
// safe to run repeatedly.
func Seed(ctx context.Context, repo Repository, entries []SeedEntry) (created int, err error) {
	typeIDs := map[string]*models.RoomType{}

	for _, entry := range entries {
		roomType, ok := typeIDs[entry.RoomType]
		if !ok {
			roomType, err = ensureRoomType(ctx, repo, entry.RoomType)
			if err != nil {
				return created, err
			}
			typeIDs[entry.RoomType] = roomType
		}

		_, err := repo.FindRoomByNumber(ctx, entry.RoomNumber)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up room")
		}

		if _, err := repo.CreateRoom(ctx, &models.Room{
			RoomNumber: entry.RoomNumber,
			RoomTypeID: roomType.ID,
		}); err != nil {
			return created, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create room")
		}
		created++
	}
	return created, nil
}

func ensureRoomType(ctx context.Context, repo Repository, name string) (*models.RoomType, error) {
	roomType, err := repo.FindRoomTypeByName(ctx, name)
	if err == nil {
		return roomType, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up room type")
	}

	roomType, err = repo.CreateRoomType(ctx, &models.RoomType{Name: name})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create room type")
	}
	return roomType, nil
}
