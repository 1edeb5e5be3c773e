// Package railgeom models the geometry of railway alignments as they are
// drawn by track design software: the plan-view centerline, its vertical
// profile, and its cant.
//
// # Elements
//
// An [Alignment] is an ordered sequence of [Element] values. Four element
// types exist:
//   - [LineElement], a straight
//   - [CurveElement], a circular arc
//   - [Clothoid], a transition spiral whose curvature grows linearly with
//     distance
//   - [BiquadraticParabola], a transition spiral (Schramm easement) defined
//     by its length
//
// Elements are immutable and safe for concurrent use. Derived values, such as
// calculated lengths, bounding extents and clothoid estimation segments, are
// computed at construction or once on first use.
//
// Distances along an element are measured from its start. [Element.PositionAt]
// maps a distance to a plan point, and [Element.LengthUntil] maps a plan point
// back to the distance of the closest point of the element.
//
// Directions are in radians, anti-clockwise from the positive x axis. Design
// data usually carries directions in geodetic grads; see [GeoGradsToRads].
//
// # Transition spirals
//
// Clothoids and biquadratic parabolas are evaluated in a canonical frame in
// which the curve starts straight at the origin and turns anti-clockwise. An
// element that flattens towards its end is evaluated backwards from its end,
// and one that turns clockwise in its walking direction is mirrored.
//
// # Vertical profile
//
// A [Profile] is a list of vertical intersections in the plane of station
// and height. [VIPoint] is a plain break point. [VICircularCurve] rounds off
// the break with a circular vertical curve fitted between its two legs. The
// profile's [ProfileSegment] values are derived from the intersections.
// Intersections that cannot be computed produce invalid linear segments
// rather than errors, and are logged to [Logger].
//
// # Cant
//
// A [Cant] is a list of cant points along the alignment. [Cant.CantAt]
// interpolates between them, linearly or with an S-shaped transition.
//
// # Bounding polygons
//
// [BoundingPolygon] computes the convex hull of a plan's geometry and maps it
// through a [Transform], for example one built by [NewProjTransform]. Failures
// yield an empty polygon.
//
// # Primitives
//
// The package builds on a small set of value types: [Point], [Vec2], [Line],
// [Circle], [Rect] and [Affine], and on pure functions for clothoid and
// parabola offsets such as [ClothoidOffset] and [BiquadraticParabolaOffset].
package railgeom
