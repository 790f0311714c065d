// Package viewtest provides gomock mocks of view.View and view.Resolver.
//
//go:generate mockgen -destination=mock_view.go -package=viewtest github.com/xy-planning-network/trailhead/http/view View,Resolver
package viewtest
