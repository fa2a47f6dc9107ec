package concurrent

// DistanceQueryParam is one cell of a distance matrix: the shortest path from node From to node To.
type DistanceQueryParam struct {
	Row  int
	Col  int
	From int64
	To   int64
}

func NewDistanceQueryParam(row, col int, from, to int64) DistanceQueryParam {
	return DistanceQueryParam{
		Row:  row,
		Col:  col,
		From: from,
		To:   to,
	}
}

type JobI interface {
	DistanceQueryParam
}

type Job[T JobI] struct {
	ID      int
	JobItem T
}
type JobFunc[T JobI, G any] func(job T) G
