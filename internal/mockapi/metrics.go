package mockapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mockapi"

// UsersWritesTotal counts mutations on the users collection.
// Label:
//   - op: "create", "update", "patch", or "delete"
var UsersWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_writes_total",
		Help:      "Total number of write operations on the users collection.",
	},
	[]string{"op"},
)

// PostsWritesTotal counts mutations on the posts collection.
// Label:
//   - op: "create", "update", "patch", or "delete"
var PostsWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_writes_total",
		Help:      "Total number of write operations on the posts collection.",
	},
	[]string{"op"},
)
