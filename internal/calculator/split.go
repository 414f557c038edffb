package calculator

import (
	"errors"

	"github.com/mmynk/dinesplit/internal/models"
)

// ErrNoParticipants is returned when a split is asked for fewer than one person.
var ErrNoParticipants = errors.New("must have at least one participant")

// Subtotal returns Σ price × quantity over lines.
func Subtotal(lines []models.CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.LineTotal()
	}
	return total
}

// CategoryTotal returns Σ price × quantity over lines of one category.
func CategoryTotal(lines []models.CartLine, cat models.Category) float64 {
	var total float64
	for _, l := range lines {
		if l.Category == cat {
			total += l.LineTotal()
		}
	}
	return total
}

// Equal divides subtotal evenly among participantCount people.
// The result is unrounded; see FormatAmount for display.
func Equal(subtotal float64, participantCount int) (models.EqualSplit, error) {
	if participantCount < 1 {
		return models.EqualSplit{}, ErrNoParticipants
	}
	return models.EqualSplit{PerPerson: subtotal / float64(participantCount)}, nil
}

// ByItem computes each participant's total from the lines assigned to them.
//
// A line assigned to several participants contributes its full line total to
// each of them. Lines assigned to nobody contribute to no one. Assigned
// indices outside participants are ignored.
func ByItem(lines []models.CartLine, participants []models.Participant, assignments map[string][]int) []models.PersonShare {
	shares := make([]models.PersonShare, len(participants))
	for i, p := range participants {
		shares[i].Participant = p
	}

	for _, line := range lines {
		for _, idx := range assignedSet(assignments[line.ID], len(participants)) {
			shares[idx].Items = append(shares[idx].Items, line)
			shares[idx].Total += line.LineTotal()
		}
	}

	return shares
}

// Unassigned returns the IDs of lines no in-range participant is assigned to.
func Unassigned(lines []models.CartLine, participantCount int, assignments map[string][]int) []string {
	var ids []string
	for _, line := range lines {
		if len(assignedSet(assignments[line.ID], participantCount)) == 0 {
			ids = append(ids, line.ID)
		}
	}
	return ids
}

// ByCategory splits participants by position: indices [0, ceil(n/2)) pay
// for veg lines, indices [ceil(n/2), n) pay for non-veg lines. A group with
// no members has a per-person share of 0.
func ByCategory(lines []models.CartLine, participants []models.Participant) models.CategorySplit {
	n := len(participants)
	cut := (n + 1) / 2

	veg := models.CategoryGroup{
		Category: models.CategoryVeg,
		Members:  append([]models.Participant(nil), participants[:cut]...),
		Total:    CategoryTotal(lines, models.CategoryVeg),
	}
	nonveg := models.CategoryGroup{
		Category: models.CategoryNonVeg,
		Members:  append([]models.Participant(nil), participants[cut:]...),
		Total:    CategoryTotal(lines, models.CategoryNonVeg),
	}
	veg.PerPerson = perPerson(veg.Total, len(veg.Members))
	nonveg.PerPerson = perPerson(nonveg.Total, len(nonveg.Members))

	return models.CategorySplit{Veg: veg, NonVeg: nonveg}
}

// Summarize computes every strategy for one cart and participant list.
func Summarize(lines []models.CartLine, participants []models.Participant, assignments map[string][]int) (*models.SplitSummary, error) {
	subtotal := Subtotal(lines)
	equal, err := Equal(subtotal, len(participants))
	if err != nil {
		return nil, err
	}

	byItem := ByItem(lines, participants, assignments)
	var byItemTotal float64
	for _, s := range byItem {
		byItemTotal += s.Total
	}

	var itemCount int
	for _, l := range lines {
		itemCount += l.Quantity
	}

	return &models.SplitSummary{
		Lines:        models.CloneLines(lines),
		Participants: append([]models.Participant(nil), participants...),
		Subtotal:     subtotal,
		ItemCount:    itemCount,
		VegTotal:     CategoryTotal(lines, models.CategoryVeg),
		NonVegTotal:  CategoryTotal(lines, models.CategoryNonVeg),
		Equal:        equal,
		ByItem:       byItem,
		Category:     ByCategory(lines, participants),
		ByItemTotal:  byItemTotal,
		Unassigned:   Unassigned(lines, len(participants), assignments),
	}, nil
}

func perPerson(total float64, members int) float64 {
	if members == 0 {
		return 0
	}
	return total / float64(members)
}

// assignedSet returns the distinct in-range indices of assigned, in order.
func assignedSet(assigned []int, participantCount int) []int {
	var out []int
	seen := make(map[int]bool, len(assigned))
	for _, idx := range assigned {
		if idx < 0 || idx >= participantCount || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	return out
}
