package main

// script installed before navigation to accumulate buffered long-task
// samples; a snapshot later reflects only the samples delivered by its
// construction instant
const longTaskScript = `(() => {
	window.__pw_longtasks = { count: 0, total: 0 };

	if (typeof PerformanceObserver === 'undefined') return;

	try {
		new PerformanceObserver((list) => {
			for (const entry of list.getEntries()) {
				window.__pw_longtasks.count++;
				window.__pw_longtasks.total += entry.duration;
			}
		}).observe({ type: 'longtask', buffered: true });
	} catch (e) {
		// longtask observation unsupported
	}
})();`

// script to collect resource timing entries, navigation timing, window
// global names, and accumulated long-task samples; a missing Performance API
// yields empty arrays and zeroed metrics, never a throw
const captureScript = `(() => {
	const out = {
		resources: [],
		global_props: [],
		navigation: { dom_interactive: 0, dom_content_loaded: 0, load: 0 },
		long_tasks: { count: 0, total: 0 },
	};

	try {
		out.global_props = Object.getOwnPropertyNames(window);
	} catch (e) {}

	if (typeof performance !== 'undefined' && performance.getEntriesByType) {
		for (const r of performance.getEntriesByType('resource')) {
			out.resources.push({
				name: r.name || '',
				initiator_type: r.initiatorType || '',
				start_time: r.startTime || 0,
				fetch_start: r.fetchStart || 0,
				response_end: r.responseEnd || 0,
				duration: r.duration || 0,
				transfer_size: r.transferSize || 0,
				encoded_body_size: r.encodedBodySize || 0,
				decoded_body_size: r.decodedBodySize || 0,
			});
		}

		const nav = performance.getEntriesByType('navigation')[0];
		if (nav) {
			out.navigation.dom_interactive = nav.domInteractive || 0;
			out.navigation.dom_content_loaded = nav.domContentLoadedEventEnd || 0;
			out.navigation.load = nav.loadEventEnd || 0;
		}
	}

	const lt = window.__pw_longtasks;
	if (lt) {
		out.long_tasks.count = lt.count;
		out.long_tasks.total = lt.total;
	}

	return out;
})()`
