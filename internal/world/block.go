package world

// BlockType identifies the material stored in a voxel.
type BlockType uint8

const (
	BlockTypeNone BlockType = iota
	BlockTypeRock
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeWater
)

// BlockClass is the structural category of a block type. Face culling and
// buffer selection only ever look at the class, never at the type ordinal.
type BlockClass uint8

const (
	ClassAir BlockClass = iota
	ClassSolid
	ClassLiquid
)

var blockClasses = map[BlockType]BlockClass{
	BlockTypeNone:  ClassAir,
	BlockTypeRock:  ClassSolid,
	BlockTypeGrass: ClassSolid,
	BlockTypeDirt:  ClassSolid,
	BlockTypeWater: ClassLiquid,
}

var blockNames = map[BlockType]string{
	BlockTypeNone:  "none",
	BlockTypeRock:  "rock",
	BlockTypeGrass: "grass",
	BlockTypeDirt:  "dirt",
	BlockTypeWater: "water",
}

// Class returns the category of t. Unregistered types are treated as solid
// so they are never culled away silently.
func (t BlockType) Class() BlockClass {
	if c, ok := blockClasses[t]; ok {
		return c
	}
	return ClassSolid
}

func (t BlockType) String() string {
	if n, ok := blockNames[t]; ok {
		return n
	}
	return "unknown"
}

// BlockTypes lists every registered type in ordinal order.
func BlockTypes() []BlockType {
	return []BlockType{BlockTypeNone, BlockTypeRock, BlockTypeGrass, BlockTypeDirt, BlockTypeWater}
}

// Block is the state held by a single voxel.
type Block struct {
	Type BlockType
}

// Air is the synthetic block returned for reads outside the world.
var Air = Block{Type: BlockTypeNone}

func NewBlock(t BlockType) Block {
	return Block{Type: t}
}

// IsNone reports whether the block holds no matter at all.
func (b Block) IsNone() bool {
	return b.Type.Class() == ClassAir
}

// IsLiquid reports whether the block is a fluid.
func (b Block) IsLiquid() bool {
	return b.Type.Class() == ClassLiquid
}

// IsSolid reports whether the block is opaque matter.
func (b Block) IsSolid() bool {
	return b.Type.Class() == ClassSolid
}

// IsTransparent reports whether faces of neighbouring solids toward this block are visible.
func (b Block) IsTransparent() bool {
	c := b.Type.Class()
	return c == ClassAir || c == ClassLiquid
}

// IsSelectable reports whether the block can be targeted for removal. Liquids
// are selectable even though they are transparent.
func (b Block) IsSelectable() bool {
	return !b.IsNone()
}

func (b Block) String() string {
	return b.Type.String()
}
