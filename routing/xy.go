package routing

import (
	"fmt"

	"github.com/sarchlab/routeunit/directions"
)

func coordsOf(id RouterID, numCols int) (x, y int) {
	return int(id) % numCols, int(id) / numCols
}

func gridHops(a, b RouterID, numCols int) int {
	ax, ay := coordsOf(a, numCols)
	bx, by := coordsOf(b, numCols)

	return abs(bx-ax) + abs(by-ay)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// outLinkXY routes dimension-order on the mesh: resolve the x offset first,
// then the y offset.
func (r *Resolver) outLinkXY(q Query) (LinkID, error) {
	dir, err := r.xyDirection(q.DestRouter, q.InDir)
	if err != nil {
		return 0, err
	}

	return r.outboundLink(dir)
}

func (r *Resolver) xyDirection(
	dest RouterID,
	inDir directions.Direction,
) (directions.Direction, error) {
	myX, myY := coordsOf(r.routerID, r.numCols)
	destX, destY := coordsOf(dest, r.numCols)

	var outDir directions.Direction

	switch {
	case destX > myX:
		outDir = directions.East
	case destX < myX:
		outDir = directions.West
	case destY > myY:
		outDir = directions.North
	case destY < myY:
		outDir = directions.South
	default:
		// The dispatcher filters out local delivery before delegating here.
		return "", fmt.Errorf(
			"%w: router %d mesh-routing to itself", ErrInvariant, r.routerID)
	}

	if err := r.turnMustBeLegal(inDir, outDir); err != nil {
		return "", err
	}

	return outDir, nil
}

// turnMustBeLegal rejects turns that dimension-order routing can never take.
// A packet moving in x must have entered from the local port, the opposite x
// port, or the shortcut overlay; a packet moving in y must not bounce back
// the way it came. Such turns indicate a routing cycle.
func (r *Resolver) turnMustBeLegal(in, out directions.Direction) error {
	legal := true

	switch out {
	case directions.East:
		legal = in == directions.Local || in == directions.West ||
			in.IsShortcut()
	case directions.West:
		legal = in == directions.Local || in == directions.East ||
			in.IsShortcut()
	case directions.North:
		legal = in != directions.North
	case directions.South:
		legal = in != directions.South
	}

	if !legal {
		return fmt.Errorf(
			"%w: router %d cannot turn from %s to %s",
			ErrInvariant, r.routerID, in, out)
	}

	return nil
}
