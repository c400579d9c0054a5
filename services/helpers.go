package services

import (
	"github.com/Dosada05/futbol5/models"
	"github.com/Dosada05/futbol5/storage"
)

func populatePlayerAvatarURLFunc(player *models.Player, uploader storage.FileUploader) {
	if player == nil || uploader == nil || player.AvatarKey == nil || *player.AvatarKey == "" {
		return
	}
	if url := uploader.GetPublicURL(*player.AvatarKey); url != "" {
		player.AvatarURL = &url
	}
}

func populatePlayerListAvatarURLsFunc(players []models.Player, uploader storage.FileUploader) {
	for i := range players {
		populatePlayerAvatarURLFunc(&players[i], uploader)
	}
}

// playersExcept returns players without the one whose id is excludedID.
func playersExcept(players []models.Player, excludedID int) []models.Player {
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.ID != excludedID {
			out = append(out, p)
		}
	}
	return out
}
