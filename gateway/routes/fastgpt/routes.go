package fastgpt

// Routes returns every explicit route, in registration order.
func Routes() []Route {
	var routes []Route
	routes = append(routes, knowledgeBaseRoutes()...)
	routes = append(routes, chatRoutes()...)
	routes = append(routes, datasetRoutes()...)
	routes = append(routes, collectionRoutes()...)
	routes = append(routes, dataRoutes()...)
	return routes
}
