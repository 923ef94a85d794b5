// Package postgreswrapper starts a throwaway PostgreSQL container and hands out sql engine
// event stores for each supported connection type.
package postgreswrapper
