// Package desktop opens the viewer window. SDL2 is the default backend;
// build with -tags glfw to use GLFW instead.
package desktop
