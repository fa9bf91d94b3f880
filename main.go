//
// Game reviews
// ============
// A HTTP REST web service over board game categories, users, reviews and
// comments, backed by Postgres (or SQLite for development).
//
// Route docs are generated from the router, to see them do:
// `go run . routes`
//
// Boot the server:
// ----------------
// $ go run . seed --db-driver sqlite3 --database-url 'file:games.db?_foreign_keys=on'
// $ go run . serve --db-driver sqlite3 --database-url 'file:games.db?_foreign_keys=on'
//
// Client requests:
// ----------------
// $ curl http://localhost:3333/api/categories
// {"categories":[{"slug":"children's games","description":"Games suitable for children"}, ...]}
//
// $ curl 'http://localhost:3333/api/reviews?sort_by=votes&order=desc&limit=1'
// {"reviews":[{"review_id":12,"title":"Scythe; you're gonna need a bigger table!", ...}],"total_count":13}
//
// $ curl -X PATCH -d '{"inc_votes":1}' http://localhost:3333/api/reviews/2
// {"review":{"review_id":2,"title":"Jenga","votes":6,"comment_count":3, ...}}
//
// $ curl -X POST -d '{"username":"dav3rid","body":"Nice"}' http://localhost:3333/api/reviews/2/comments
// {"comment":{"comment_id":7,"review_id":2,"author":"dav3rid","body":"Nice","votes":0, ...}}
//
// $ curl -X DELETE http://localhost:3333/api/reviews/2
//
// $ curl http://localhost:3333/api/reviews/2
// {"msg":"Review does not exist."}
//
// $ curl http://localhost:9999/metrics
//
package main

import (
	"os"

	"github.com/SergeyParamoshkin/gamereviews/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
