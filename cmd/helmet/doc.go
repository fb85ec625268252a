// Command helmet runs and manages the helmet store.
//
//	helmet serve             # start the HTTP server
//	helmet migrate           # run pending migrations
//	helmet migrate:rollback
//	helmet migrate:status
//	helmet seed              # insert the standard helmet types
//	helmet route:list        # list API routes
//
// Configuration is read from config/app.json, .env and the environment.
package main
