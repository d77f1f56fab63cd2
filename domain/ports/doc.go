// Package ports defines the interfaces the SDK's actions and adapters meet at.
// Actions depend on Client; infrastructure packages implement Transport,
// Provider, PermissionStore, Prompter and ParamsParser, and application/template
// implements TemplateEngine.
package ports
