package storage

const (
	DB_DIR          = "nogivan-db"
	GRAPH_FILE_NAME = "graph.index"
	ROUTE_CACHE_DIR = "route-cache"

	graphFileVersion uint32 = 1
)
