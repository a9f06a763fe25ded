package anneal

import "errors"

// ErrNoNeighbor indicates the neighbor function could not produce a
// candidate (e.g. every move operator it tried was rejected by the
// repair/placement machinery).
var ErrNoNeighbor = errors.New("anneal: neighbor function produced no candidate")
