// Package database manages the PostgreSQL connection pool for the pipeline.
package database
