package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/shared/levelformat"
)

// RecordData links a runtime entity back to its level entity record.
type RecordData struct {
	Index int
	Kind  levelformat.EntityKind
}

var Record = donburi.NewComponentType[RecordData]()
