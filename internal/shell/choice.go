package shell

// Choice is a top-level menu entry.
type Choice int

const (
	ChoiceAdd Choice = iota + 1
	ChoiceList
	ChoiceFind
	ChoiceUpdate
	ChoiceDelete
	ChoiceLowStock
	ChoiceAdjust
	ChoiceExit
)

func (c Choice) String() string {
	switch c {
	case ChoiceAdd:
		return "add"
	case ChoiceList:
		return "list"
	case ChoiceFind:
		return "find"
	case ChoiceUpdate:
		return "update"
	case ChoiceDelete:
		return "delete"
	case ChoiceLowStock:
		return "low-stock"
	case ChoiceAdjust:
		return "adjust"
	case ChoiceExit:
		return "exit"
	default:
		return "unknown"
	}
}

// UpdateField is the sub-choice of the update operation.
type UpdateField int

const (
	UpdateName UpdateField = iota + 1
	UpdateQuantity
	UpdatePrice
	UpdateAll
)

func (f UpdateField) Valid() bool {
	return f >= UpdateName && f <= UpdateAll
}

func (f UpdateField) setsName() bool     { return f == UpdateName || f == UpdateAll }
func (f UpdateField) setsQuantity() bool { return f == UpdateQuantity || f == UpdateAll }
func (f UpdateField) setsPrice() bool    { return f == UpdatePrice || f == UpdateAll }
