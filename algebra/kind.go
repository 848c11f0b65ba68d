package algebra

import "github.com/symplex/symplex/internal/utils"

// Kind tags the operand kinds the dispatch engine understands.
type Kind uint8

const (
	KindScalar Kind = iota
	KindVariable
	KindAffine
	KindQuadratic
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVariable:
		return "variable"
	case KindAffine:
		return "affine expression"
	case KindQuadratic:
		return "quadratic expression"
	default:
		return "invalid operand"
	}
}

// KindOf classifies an operand. Numeric primitives map to KindScalar;
// anything the engine cannot interpret is KindInvalid.
func KindOf(i interface{}) Kind {
	switch i.(type) {
	case Variable:
		return KindVariable
	case *AffineExpr:
		return KindAffine
	case *QuadExpr:
		return KindQuadratic
	default:
		if _, ok := utils.ToFloat(i); ok {
			return KindScalar
		}
		return KindInvalid
	}
}
