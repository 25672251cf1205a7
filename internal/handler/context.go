package handler

type ContextKey string

var TenantCtx ContextKey = "tenant"
