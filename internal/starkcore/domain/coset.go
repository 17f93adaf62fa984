package domain

import (
	"fmt"

	"github.com/vybium/vybium-stark-fri/internal/starkcore/field"
)

// CosetOffset searches for a field element h such that h^subgroupOrder != 1,
// i.e. h does not lie in the subgroup of that order. Any such h yields a
// coset disjoint from the subgroup when used as Domain.Offset.
func CosetOffset(f *field.Field, subgroupOrder int) (*field.FieldElement, error) {
	one := f.One()
	for candidate := int64(2); candidate < 1000; candidate++ {
		h := f.FromInt64(candidate)
		if !h.ExpInt(subgroupOrder).Equal(one) {
			return h, nil
		}
	}
	return nil, fmt.Errorf("domain: no coset offset found disjoint from the order-%d subgroup", subgroupOrder)
}
