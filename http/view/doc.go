/*
Package view resolves view names into Views and renders them with a Model.

Resolvers are tried in order; the first to return a View wins.
A TemplateResolver looks for locale-specific templates first:
given the name "home" and the locale fr-CA, it tries home_fr-CA, home_fr and then home,
each wrapped in the resolver's prefix and suffix.
*/
package view
