package sharding

// ShardRouter maps a public order number to one of the order-history shards.
type ShardRouter struct {
	ShardCount int
}

func NewShardRouter(shardCount int) *ShardRouter {
	if shardCount < 1 {
		shardCount = 1
	}
	return &ShardRouter{ShardCount: shardCount}
}

// GetShard routes by order number. Routing must be stable: the same number
// always lands on the same shard.
func (r *ShardRouter) GetShard(orderID int) int {
	if orderID < 0 {
		orderID = -orderID
	}
	return orderID % r.ShardCount
}
