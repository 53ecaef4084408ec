package drag

import (
	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/playlist"
)

// Nudge moves the dragged subject one step (delta of -1 or +1) on the
// preview. Items step across section boundaries into the neighbouring
// unlocked section; nothing ever steps into or past a locked section.
// Reports whether the preview changed.
func (c *Controller) Nudge(delta int) (bool, error) {
	if c.state != Dragging {
		return false, domain.ErrNoDrag
	}
	if delta == 0 {
		return false, nil
	}
	if delta > 0 {
		delta = 1
	} else {
		delta = -1
	}

	switch s := c.subject.(type) {
	case SectionSubject:
		idx := c.preview.IndexOf(s.ID)
		if idx < 0 {
			return false, nil
		}
		next, err := playlist.MoveSection(c.preview, s.ID, idx+delta)
		if err != nil || idx+delta < 0 || idx+delta >= len(c.preview.Sections) {
			return false, nil
		}
		c.preview = next
		return true, nil
	case ItemSubject:
		return c.nudgeItem(s.ID, delta), nil
	}
	return false, nil
}

func (c *Controller) nudgeItem(itemID string, delta int) bool {
	secID, pos, ok := playlist.FindItem(c.preview, itemID)
	if !ok {
		return false
	}
	si := c.preview.IndexOf(secID)
	n := len(c.preview.Sections[si].Items)

	target := pos + delta
	if target >= 0 && target < n {
		next, err := playlist.MoveItem(c.preview, itemID, secID, secID, target)
		if err != nil {
			return false
		}
		c.preview = next
		return true
	}

	ni := si + delta
	if ni < 0 || ni >= len(c.preview.Sections) {
		return false
	}
	neighbour := c.preview.Sections[ni]
	if neighbour.Locked {
		return false
	}
	at := 0
	if delta < 0 {
		at = len(neighbour.Items)
	}
	next, err := playlist.MoveItem(c.preview, itemID, secID, neighbour.ID, at)
	if err != nil {
		return false
	}
	c.preview = next
	return true
}
