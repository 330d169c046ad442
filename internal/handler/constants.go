// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"

	// RouteServices is the public services route.
	RouteServices = "/services"
	// RouteServicesSlug is the public service detail route pattern.
	RouteServicesSlug = RouteServices + RouteParamSlug
	// RouteBlog is the public blog route.
	RouteBlog = "/blog"
	// RouteBlogSlug is the public blog post route pattern.
	RouteBlogSlug = RouteBlog + RouteParamSlug
	// RouteContact is the public contact form route.
	RouteContact = "/contact"

	// RouteLogin is the admin login route.
	RouteLogin = "/login"
	// RouteSignup is the admin signup route.
	RouteSignup = "/signup"
	// RouteLogout is the admin logout route.
	RouteLogout = "/logout"
	// RouteChangePassword is the change password route.
	RouteChangePassword = "/change-password"

	// RouteLeads is the leads admin route.
	RouteLeads = "/leads"
	// RoutePages is the pages admin route.
	RoutePages = "/pages"
	// RoutePosts is the blog posts admin route.
	RoutePosts = "/posts"
	// RouteUsers is the users admin route.
	RouteUsers = "/users"
	// RouteSettings is the settings admin route.
	RouteSettings = "/settings"
	// RouteMIS is the MIS report templates admin route.
	RouteMIS = "/mis"

	// RouteLeadsID is the leads ID route pattern.
	RouteLeadsID = RouteLeads + RouteParamID
	// RoutePagesID is the pages ID route pattern.
	RoutePagesID = RoutePages + RouteParamID
	// RouteServicesID is the services ID route pattern.
	RouteServicesID = RouteServices + RouteParamID
	// RoutePostsID is the posts ID route pattern.
	RoutePostsID = RoutePosts + RouteParamID
	// RouteUsersID is the users ID route pattern.
	RouteUsersID = RouteUsers + RouteParamID
	// RouteMISID is the MIS templates ID route pattern.
	RouteMISID = RouteMIS + RouteParamID
)

// Admin redirect targets.
const (
	redirectAdmin         = "/admin"
	redirectAdminLogin    = redirectAdmin + RouteLogin
	redirectAdminLeads    = redirectAdmin + RouteLeads
	redirectAdminPages    = redirectAdmin + RoutePages
	redirectAdminPagesNew = redirectAdminPages + RouteSuffixNew
	redirectAdminServices = redirectAdmin + RouteServices
	redirectAdminSvcNew   = redirectAdminServices + RouteSuffixNew
	redirectAdminPosts    = redirectAdmin + RoutePosts
	redirectAdminPostsNew = redirectAdminPosts + RouteSuffixNew
	redirectAdminUsers    = redirectAdmin + RouteUsers
	redirectAdminUsersNew = redirectAdminUsers + RouteSuffixNew
	redirectAdminSettings = redirectAdmin + RouteSettings
	redirectAdminMIS      = redirectAdmin + RouteMIS
	redirectAdminMISNew   = redirectAdminMIS + RouteSuffixNew

	redirectAdminLeadsID = redirectAdminLeads + "/%d"
	redirectAdminMISID   = redirectAdminMIS + "/%d"
)

// HeaderContentType is the Content-Type HTTP header name.
const HeaderContentType = "Content-Type"
