package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Dealflow Dashboard API
// @version         0.1.0
// @description     Opportunity revenue aggregation and goal tracking.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
