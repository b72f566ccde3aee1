// Package controller connects the user interface to the queue and the
// workers. Operations run on the UI thread; worker events are forwarded
// there through a Dispatcher before they touch the queue.
package controller
