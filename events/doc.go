// Package events contains the care events recorded for an infant:
// feedings, dejections (diaper events) and weight measurements.
//
// Values are built with validating constructors (BuildFeeding, BuildDejection, BuildWeight)
// that trim the baby name, normalize blank notes to "no notes" and reject out-of-range
// quantities. Newly built values carry ID 0; identity is only ever assigned by a store.
//
// Categorical fields are parsed once at the boundary (ParseFeedingType, ParseDejectionType)
// into closed enumerations, so nothing downstream matches on raw strings.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package events
