package model

import (
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type balanceSlot struct {
	mwf bool
}

// DayBalanceShortfall matches every slot of the day-balance target (MWF slots, then TTh slots) to a distinct filtered course of that pattern
// and returns how many slots are left without a course. The balance is a soft preference, so a shortfall only lowers scores
func DayBalanceShortfall(filtered []Course, balance DayBalance) (int, error) {
	slots := make([]balanceSlot, 0, max(0, balance.MWF)+max(0, balance.TTh))
	for range max(0, balance.MWF) {
		slots = append(slots, balanceSlot{mwf: true})
	}
	for range max(0, balance.TTh) {
		slots = append(slots, balanceSlot{mwf: false})
	}
	if len(slots) == 0 || len(filtered) == 0 {
		return len(slots), nil
	}

	patterns := lo.Map(filtered, func(course Course, _ int) DayBalance {
		return Schedule{Courses: []Course{course}}.DayBalance()
	})

	// Build neighbors predicate based on each course's pattern
	neighbors := func(slotAny any, courseAny any) (bool, error) {
		slot, pattern := slotAny.(balanceSlot), patterns[courseAny.(int)]
		if slot.mwf {
			return pattern.MWF > 0, nil
		}
		return pattern.TTh > 0, nil
	}

	slotsAny := lo.Map(slots, func(slot balanceSlot, _ int) any { return slot })
	coursesAny := lo.Map(filtered, func(_ Course, i int) any { return i })

	graph, err := bipartitegraph.NewBipartiteGraph(slotsAny, coursesAny, neighbors)
	if err != nil {
		return 0, err
	}
	return len(slots) - len(graph.LargestMatching()), nil
}
