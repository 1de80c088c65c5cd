package browser

const highlightScript = `(text) => {
	document.querySelectorAll('.vani-highlight').forEach(el => {
		const parent = el.parentNode;
		parent.replaceChild(document.createTextNode(el.textContent), el);
		parent.normalize();
	});
	if (!text) return 0;

	const needle = text.toLowerCase();
	const walker = document.createTreeWalker(document.body, NodeFilter.SHOW_TEXT, null);
	const nodes = [];
	let node;
	while ((node = walker.nextNode())) {
		if (node.textContent.toLowerCase().includes(needle)) nodes.push(node);
	}
	nodes.forEach(n => {
		const span = document.createElement('span');
		span.className = 'vani-highlight';
		span.style.backgroundColor = '#FFEB3B';
		span.style.color = '#000';
		span.textContent = n.textContent;
		n.parentNode.replaceChild(span, n);
	});

	const first = document.querySelector('.vani-highlight');
	if (first) first.scrollIntoView({behavior: 'smooth', block: 'center', inline: 'nearest'});
	return nodes.length;
}`

const selectionScript = `() => window.getSelection().toString().trim()`

const contentScript = `(selectors) => {
	let el = document.body;
	for (const s of selectors) {
		const found = document.querySelector(s);
		if (found && found.textContent.length > 100) { el = found; break; }
	}
	return el ? el.innerText : '';
}`

const clickScript = `(target) => {
	const wanted = target.toLowerCase().trim();
	let el = null;
	if (wanted === 'button') {
		el = document.querySelector('button');
	} else if (wanted === 'link') {
		el = document.querySelector('a');
	} else {
		const candidates = document.querySelectorAll('button, a, input[type="button"], input[type="submit"]');
		for (const c of candidates) {
			const label = (c.innerText || c.value || '').toLowerCase();
			if (label.includes(wanted)) { el = c; break; }
		}
	}
	if (!el) return false;
	el.click();
	return true;
}`

const selectInputScript = `(position) => {
	const inputs = Array.from(document.querySelectorAll('input[type="text"], input[type="search"], input[type="email"], input:not([type]), textarea'));
	if (inputs.length === 0) return false;
	const el = position === 'last' ? inputs[inputs.length - 1] : inputs[0];
	el.focus();
	return true;
}`

const pauseScript = `() => {
	let paused = 0;
	document.querySelectorAll('video, audio').forEach(m => {
		if (!m.paused) { m.pause(); paused++; }
	});
	return paused;
}`

const muteScript = `() => {
	const muted = !window.__vaniMuted;
	document.querySelectorAll('video, audio').forEach(m => { m.muted = muted; });
	window.__vaniMuted = muted;
	return muted;
}`

const scrollScript = `([direction, amount]) => {
	switch (direction) {
	case 'up': window.scrollBy({top: -amount, behavior: 'smooth'}); break;
	case 'down': window.scrollBy({top: amount, behavior: 'smooth'}); break;
	case 'top': window.scrollTo({top: 0, behavior: 'smooth'}); break;
	case 'bottom': window.scrollTo({top: document.body.scrollHeight, behavior: 'smooth'}); break;
	}
}`

const speakScript = `([text, rate, pitch, volume, lang]) => {
	if (!('speechSynthesis' in window)) return false;
	speechSynthesis.cancel();
	const u = new SpeechSynthesisUtterance(text);
	u.rate = rate;
	u.pitch = pitch;
	u.volume = volume;
	if (lang) u.lang = lang;
	speechSynthesis.speak(u);
	return true;
}`
