// Package score evaluates a layout's quality as a single comparable Metrics
// value: total belt length, bounding-box area, corner count, and a penalty
// for any connection that could not be routed at all.
//
// Two evaluators are provided. EvaluateRouted walks each connection's
// actually-applied BeltPath and is exact but requires the router to have
// run. EvaluateProxy substitutes the Manhattan distance between each
// connection's external tiles for its belt length and counts one corner
// for each connection whose tiles differ on both axes; it is far cheaper
// and is used by the optimizer's early, routing-free annealing phase to
// steer placement before routed evaluation becomes affordable.
package score
