package tags

import "github.com/yohamta/donburi"

var (
	Player   = donburi.NewTag().SetName("Player")
	Enemy    = donburi.NewTag().SetName("Enemy")
	Platform = donburi.NewTag().SetName("Platform")
)

// Resolv tags for entity-to-entity checks. Tile solidity comes from the
// level grid, not from resolv.
const (
	ResolvPlayer   = "player"
	ResolvEnemy    = "enemy"
	ResolvPlatform = "platform"
)
