package walls

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "walls")

// minWindowGap is the smallest allowed gap between adjacent windows.
const minWindowGap = 0.3

// DistributeWindows spreads up to count windows evenly along the
// segment, keeping an edge margin free at both ends and skipping any
// window that would overlap an existing opening (a door placed
// earlier). Requests that do not fit degrade instead of erroring: the
// count is capped by wall capacity, and a wall too short for a single
// window gets none.
func DistributeWindows(s *Segment, count int, windowWidth, windowHeight, spacing, sillHeight float64) {
	if count <= 0 {
		return
	}
	wallLength := s.Length()

	edgeMargin := spacing * 0.5
	if edgeMargin < 0.3 {
		edgeMargin = 0.3
	}
	available := wallLength - 2*edgeMargin
	if available < windowWidth {
		log.WithFields(logrus.Fields{
			"wall_length":  wallLength,
			"window_width": windowWidth,
		}).Debug("wall too short for a window")
		return
	}

	maxWindows := int((available + minWindowGap) / (windowWidth + minWindowGap))
	if maxWindows < 1 {
		maxWindows = 1
	}
	if count > maxWindows {
		count = maxWindows
	}

	remaining := available - float64(count)*windowWidth
	var gap float64
	if count == 1 {
		gap = remaining / 2
	} else {
		gap = remaining / float64(count+1)
	}

	zStart := sillHeight
	zEnd := sillHeight + windowHeight
	if zEnd > s.Height-0.2 {
		zEnd = s.Height - 0.2
		if zEnd <= zStart {
			return
		}
	}

	for i := 0; i < count; i++ {
		xStart := edgeMargin + gap + float64(i)*(windowWidth+gap)
		xEnd := xStart + windowWidth

		if overlapsExisting(s.Openings, xStart, xEnd, zStart, zEnd) {
			log.WithField("x", xStart).Debug("window dropped, overlaps door")
			continue
		}
		s.AddOpening(xStart, xEnd, zStart, zEnd, OpeningWindow)
	}
}

// overlapsExisting checks a candidate window against placed openings
// with horizontal padding so frames never touch.
func overlapsExisting(openings []Opening, xStart, xEnd, zStart, zEnd float64) bool {
	const padding = 0.1
	for _, op := range openings {
		if xEnd+padding <= op.XStart || xStart-padding >= op.XEnd {
			continue
		}
		if zEnd <= op.ZStart || zStart >= op.ZEnd {
			continue
		}
		return true
	}
	return false
}
