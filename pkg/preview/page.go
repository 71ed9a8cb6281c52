package preview

// pageTemplate takes the escaped title and the container markup. The client
// replaces the body on every render message and forwards clicks, input and
// Enter key presses on elements with an id to /dispatch.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>%s<script>
(function() {
    'use strict';

    function post(path, body) {
        return fetch(path, {
            method: 'POST',
            headers: {'Content-Type': 'application/json'},
            body: body ? JSON.stringify(body) : undefined
        });
    }

    function target(e) {
        var el = e.target;
        while (el && el !== document.body && !el.id) {
            el = el.parentElement;
        }
        return el && el.id ? el : null;
    }

    document.addEventListener('click', function(e) {
        var el = target(e);
        if (!el) return;
        e.preventDefault();
        post('/dispatch', {selector: '#' + el.id, type: 'click'});
    });

    document.addEventListener('input', function(e) {
        var el = target(e);
        if (!el) return;
        post('/dispatch', {selector: '#' + el.id, type: 'input', value: el.value});
    });

    document.addEventListener('keyup', function(e) {
        var el = target(e);
        if (!el || e.key !== 'Enter') return;
        post('/dispatch', {selector: '#' + el.id, type: 'keyup', key: e.key});
    });

    document.addEventListener('keydown', function(e) {
        if (!(e.ctrlKey || e.metaKey) || e.key !== 'z') return;
        e.preventDefault();
        post(e.shiftKey ? '/redo' : '/undo');
    });

    var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(protocol + '//' + location.host + '/ws');
    ws.onmessage = function(e) {
        var msg = JSON.parse(e.data);
        if (msg.type === 'render') {
            var script = document.body.lastElementChild;
            document.body.innerHTML = msg.markup;
            document.body.appendChild(script);
        } else if (msg.type === 'error') {
            console.error('[hyperoop] ' + msg.error);
        }
    };
})();
</script></body>
</html>
`
