package handler

type ContextKey string

var (
	StationCtx ContextKey = "station"
)
